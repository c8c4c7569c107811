package utils

import (
	"fmt"
	"math/big"
)

// Config represents the configuration for proof generation and
// verification. Prover and verifier must agree on every field here;
// the values are public protocol parameters.
type Config struct {
	// FieldModulus is the prime defining the finite field
	FieldModulus *big.Int

	// HashFunction selects the Merkle/Fiat-Shamir hash:
	// "sha256", "sha3", "poseidon" or "rescue"
	HashFunction string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		FieldModulus: big.NewInt(1_000_000_007),
		HashFunction: "sha3",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.FieldModulus == nil || c.FieldModulus.Cmp(big.NewInt(1)) <= 0 {
		return fmt.Errorf("field modulus must be greater than 1")
	}

	if !c.FieldModulus.ProbablyPrime(20) {
		return fmt.Errorf("field modulus %s is not prime", c.FieldModulus.String())
	}

	switch c.HashFunction {
	case "sha256", "sha3", "poseidon", "rescue":
	default:
		return fmt.Errorf("hash function must be 'sha256', 'sha3', 'poseidon' or 'rescue', got '%s'",
			c.HashFunction)
	}

	return nil
}

// WithFieldModulus sets the field modulus
func (c *Config) WithFieldModulus(modulus *big.Int) *Config {
	c.FieldModulus = new(big.Int).Set(modulus)
	return c
}

// WithHashFunction sets the hash function
func (c *Config) WithHashFunction(hashFunc string) *Config {
	c.HashFunction = hashFunc
	return c
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	return &Config{
		FieldModulus: new(big.Int).Set(c.FieldModulus),
		HashFunction: c.HashFunction,
	}
}
