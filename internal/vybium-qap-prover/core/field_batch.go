// Package core provides the finite field, polynomial, hash and Merkle
// tree primitives the proving pipeline is built on.
package core

import "fmt"

// BatchInv inverts a batch of nonzero field elements using Montgomery's
// trick: one modular inversion plus 3(n-1) multiplications instead of n
// inversions. Lagrange interpolation uses it to invert all basis
// denominators at once.
//
// Any zero element fails the whole batch with ErrDivisionByZero.
func (f *Field) BatchInv(elements []*FieldElement) ([]*FieldElement, error) {
	n := len(elements)
	if n == 0 {
		return []*FieldElement{}, nil
	}

	for i, elem := range elements {
		if elem.IsZero() {
			return nil, fmt.Errorf("batch inversion: element %d: %w", i, ErrDivisionByZero)
		}
	}

	// Accumulate prefix products: acc[i] = elements[0] * ... * elements[i]
	acc := make([]*FieldElement, n)
	acc[0] = elements[0]
	for i := 1; i < n; i++ {
		acc[i] = acc[i-1].Mul(elements[i])
	}

	accInv, err := acc[n-1].Inv()
	if err != nil {
		return nil, fmt.Errorf("batch inversion: %w", err)
	}

	// Back-substitute: elements[i]^(-1) = acc[i-1] * (acc[i])^(-1)
	results := make([]*FieldElement, n)
	for i := n - 1; i > 0; i-- {
		results[i] = accInv.Mul(acc[i-1])
		accInv = accInv.Mul(elements[i])
	}
	results[0] = accInv

	return results, nil
}
