// Package protocols implements the proving pipeline: rank-1 constraint
// systems, their quadratic-arithmetic-program form, and the
// commit/challenge/evaluate proof protocol built on top.
package protocols

import (
	"errors"
	"fmt"

	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/core"
)

// ErrUnsatisfied marks a witness that violates at least one constraint.
// Use errors.Is against it; the wrapping error names the failing
// constraint index.
var ErrUnsatisfied = errors.New("witness does not satisfy constraint system")

// R1CS represents a Rank-1 Constraint System: an ordered list of
// constraints (A[i] · w) * (B[i] · w) = C[i] · w over a witness vector w.
//
// Witness layout is fixed: w[0] is the constant one, w[1..numPublic] are
// the public inputs, the remaining positions are private.
type R1CS struct {
	field     *core.Field
	A         [][]*core.FieldElement
	B         [][]*core.FieldElement
	C         [][]*core.FieldElement
	numVars   int
	numCons   int
	numPublic int
}

// Witness is a full assignment to all R1CS variables. It is never sent
// to the verifier in the clear.
type Witness struct {
	W []*core.FieldElement
}

// NewWitness wraps an assignment vector
func NewWitness(values []*core.FieldElement) *Witness {
	return &Witness{W: values}
}

// NewR1CS creates an empty R1CS with the given shape. numPublic counts
// the public input positions (excluding the constant-one slot) and must
// leave room for it and at least the public inputs.
func NewR1CS(field *core.Field, numVars, numCons, numPublic int) (*R1CS, error) {
	if numVars < 1 {
		return nil, fmt.Errorf("R1CS needs at least the constant-one variable, got %d", numVars)
	}
	if numCons < 1 {
		return nil, fmt.Errorf("R1CS needs at least one constraint, got %d", numCons)
	}
	if numPublic < 0 || numPublic >= numVars {
		return nil, fmt.Errorf("public input count %d out of range [0, %d)", numPublic, numVars)
	}

	return &R1CS{
		field:     field,
		A:         make([][]*core.FieldElement, numCons),
		B:         make([][]*core.FieldElement, numCons),
		C:         make([][]*core.FieldElement, numCons),
		numVars:   numVars,
		numCons:   numCons,
		numPublic: numPublic,
	}, nil
}

// Field returns the field the system is defined over
func (r *R1CS) Field() *core.Field {
	return r.field
}

// NumVars returns the witness length
func (r *R1CS) NumVars() int { return r.numVars }

// NumConstraints returns the number of constraints
func (r *R1CS) NumConstraints() int { return r.numCons }

// NumPublic returns the number of public input positions (the constant
// one at index 0 not included)
func (r *R1CS) NumPublic() int { return r.numPublic }

// SetConstraint sets constraint i: (aRow · w) * (bRow · w) = cRow · w.
// Every coefficient vector must have exactly witness length.
func (r *R1CS) SetConstraint(i int, aRow, bRow, cRow []*core.FieldElement) error {
	if i < 0 || i >= r.numCons {
		return fmt.Errorf("constraint index %d out of range [0, %d)", i, r.numCons)
	}

	if len(aRow) != r.numVars || len(bRow) != r.numVars || len(cRow) != r.numVars {
		return fmt.Errorf("constraint %d row length mismatch: expected %d, got %d, %d, %d",
			i, r.numVars, len(aRow), len(bRow), len(cRow))
	}

	r.A[i] = append([]*core.FieldElement(nil), aRow...)
	r.B[i] = append([]*core.FieldElement(nil), bRow...)
	r.C[i] = append([]*core.FieldElement(nil), cRow...)

	return nil
}

// Column returns the i-th coefficient of every constraint of one matrix,
// i.e. the column the QAP interpolates into a single polynomial
func (r *R1CS) Column(matrix [][]*core.FieldElement, i int) []*core.FieldElement {
	column := make([]*core.FieldElement, r.numCons)
	for k := 0; k < r.numCons; k++ {
		column[k] = matrix[k][i]
	}
	return column
}

// IsSatisfied checks every constraint against the witness. It returns
// nil on success and an error wrapping ErrUnsatisfied naming the first
// failing constraint otherwise. This predicate is the ground truth the
// QAP divisibility test is equivalent to.
func (r *R1CS) IsSatisfied(witness *Witness) error {
	if witness == nil || len(witness.W) != r.numVars {
		got := 0
		if witness != nil {
			got = len(witness.W)
		}
		return fmt.Errorf("witness length mismatch: expected %d, got %d", r.numVars, got)
	}

	for i := 0; i < r.numCons; i++ {
		if r.A[i] == nil {
			return fmt.Errorf("constraint %d was never set", i)
		}

		aDotW := r.dotProduct(r.A[i], witness.W)
		bDotW := r.dotProduct(r.B[i], witness.W)
		cDotW := r.dotProduct(r.C[i], witness.W)

		left := aDotW.Mul(bDotW)
		if !left.Equal(cDotW) {
			return fmt.Errorf("constraint %d: (%v) * (%v) != %v: %w",
				i, aDotW, bDotW, cDotW, ErrUnsatisfied)
		}
	}

	return nil
}

// PublicPrefix returns the values the verifier may learn: the constant
// one followed by the public inputs
func (r *R1CS) PublicPrefix(witness *Witness) []*core.FieldElement {
	prefix := make([]*core.FieldElement, r.numPublic+1)
	copy(prefix, witness.W[:r.numPublic+1])
	return prefix
}

func (r *R1CS) dotProduct(row, w []*core.FieldElement) *core.FieldElement {
	result := r.field.Zero()
	for i := range row {
		result = result.Add(row[i].Mul(w[i]))
	}
	return result
}
