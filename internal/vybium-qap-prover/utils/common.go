// Package utils provides shared helpers: the Fiat-Shamir transcript
// channel, prover/verifier configuration and small numeric utilities.
package utils

// IsPowerOfTwo checks if a number is a power of 2
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// Log2 computes the base-2 logarithm of a power of 2
func Log2(n int) int {
	if !IsPowerOfTwo(n) {
		return -1
	}

	result := 0
	for n > 1 {
		n >>= 1
		result++
	}
	return result
}

// NextPowerOfTwo returns the smallest power of 2 >= n
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	if IsPowerOfTwo(n) {
		return n
	}

	power := 1
	for power < n {
		power <<= 1
	}
	return power
}

// CeilLog2 returns ceil(log2(n)) for n >= 1, i.e. the depth of a
// complete binary tree with n leaves after power-of-two padding
func CeilLog2(n int) int {
	if n <= 0 {
		return -1
	}
	return Log2(NextPowerOfTwo(n))
}
