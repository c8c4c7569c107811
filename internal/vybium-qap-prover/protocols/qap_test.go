package protocols

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/core"
)

// TestFromR1CS tests the transformation shape
func TestFromR1CS(t *testing.T) {
	field := mustField(t, 101)
	r1cs := chainR1CS(t, field)

	qap, err := FromR1CS(r1cs)
	if err != nil {
		t.Fatalf("FromR1CS failed: %v", err)
	}
	if qap.NumVars() != r1cs.NumVars() {
		t.Errorf("NumVars = %d, expected %d", qap.NumVars(), r1cs.NumVars())
	}
	if qap.NumConstraints() != r1cs.NumConstraints() {
		t.Errorf("NumConstraints = %d, expected %d", qap.NumConstraints(), r1cs.NumConstraints())
	}

	// Z(x) = (x-1)(x-2) has degree 2 and vanishes exactly at the nodes
	target := qap.Target()
	if target.Degree() != 2 {
		t.Errorf("target degree = %d, expected 2", target.Degree())
	}
	for k := 1; k <= 2; k++ {
		if !target.Eval(field.NewElementFromInt64(int64(k))).IsZero() {
			t.Errorf("Z(%d) != 0", k)
		}
	}
	if target.Eval(field.NewElementFromInt64(3)).IsZero() {
		t.Error("Z(3) = 0, target vanishes off the nodes")
	}

	if _, err := FromR1CS(nil); err == nil {
		t.Error("FromR1CS(nil) should fail")
	}
}

// TestFromR1CSUnsetConstraint verifies partially built systems are
// rejected
func TestFromR1CSUnsetConstraint(t *testing.T) {
	field := mustField(t, 101)
	r1cs, err := NewR1CS(field, 3, 2, 1)
	if err != nil {
		t.Fatalf("NewR1CS failed: %v", err)
	}
	if err := r1cs.SetConstraint(0, row(field, 0, 0, 1), row(field, 0, 0, 1), row(field, 0, 1, 0)); err != nil {
		t.Fatalf("SetConstraint failed: %v", err)
	}

	if _, err := FromR1CS(r1cs); err == nil {
		t.Error("FromR1CS with an unset constraint should fail")
	}
}

// TestCombinedInterpolatesConstraints verifies the combined polynomials
// evaluate at node k+1 to the dot products of constraint k
func TestCombinedInterpolatesConstraints(t *testing.T) {
	field := mustField(t, 101)
	r1cs := chainR1CS(t, field)
	qap, err := FromR1CS(r1cs)
	if err != nil {
		t.Fatalf("FromR1CS failed: %v", err)
	}

	// x = 2, y = 4, z = 8 satisfies x*x = y, y*x = z
	witness := NewWitness(row(field, 1, 8, 2, 4))
	a, b, c, err := qap.CombinedPolys(witness)
	if err != nil {
		t.Fatalf("CombinedPolys failed: %v", err)
	}

	// Node 1: constraint x*x = y gives (2, 2, 4)
	// Node 2: constraint y*x = z gives (4, 2, 8)
	expected := []struct{ aDot, bDot, cDot int64 }{
		{2, 2, 4},
		{4, 2, 8},
	}
	for k, exp := range expected {
		x := field.NewElementFromInt64(int64(k + 1))
		if got := a.Eval(x).Big().Int64(); got != exp.aDot {
			t.Errorf("A(%d) = %d, expected %d", k+1, got, exp.aDot)
		}
		if got := b.Eval(x).Big().Int64(); got != exp.bDot {
			t.Errorf("B(%d) = %d, expected %d", k+1, got, exp.bDot)
		}
		if got := c.Eval(x).Big().Int64(); got != exp.cDot {
			t.Errorf("C(%d) = %d, expected %d", k+1, got, exp.cDot)
		}
	}
}

// TestQuotient tests exact divisibility for satisfying witnesses and
// ErrNonDivisible otherwise
func TestQuotient(t *testing.T) {
	field := mustField(t, 101)
	r1cs := chainR1CS(t, field)
	qap, err := FromR1CS(r1cs)
	if err != nil {
		t.Fatalf("FromR1CS failed: %v", err)
	}

	good := NewWitness(row(field, 1, 8, 2, 4))
	h, err := qap.Quotient(good)
	if err != nil {
		t.Fatalf("Quotient failed for a satisfying witness: %v", err)
	}

	// h * Z must reproduce the combined polynomial exactly
	combined, err := qap.Combined(good)
	if err != nil {
		t.Fatalf("Combined failed: %v", err)
	}
	hz, err := h.Mul(qap.Target())
	if err != nil {
		t.Fatalf("Mul failed: %v", err)
	}
	diff, err := combined.Sub(hz)
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	if !diff.IsZero() {
		t.Error("h * Z != A*B - C")
	}

	bad := NewWitness(row(field, 1, 8, 2, 5))
	if _, err := qap.Quotient(bad); !errors.Is(err, ErrNonDivisible) {
		t.Errorf("Quotient for a bad witness error = %v, expected ErrNonDivisible", err)
	}

	if _, err := qap.Quotient(NewWitness(row(field, 1, 8))); err == nil {
		t.Error("short witness should fail")
	}
}

// TestQAPEquivalence checks the defining property on random witnesses:
// divisibility of A*B - C by Z holds exactly when the R1CS is satisfied
func TestQAPEquivalence(t *testing.T) {
	field := mustField(t, 1_000_000_007)
	r1cs := chainR1CS(t, field)
	qap, err := FromR1CS(r1cs)
	if err != nil {
		t.Fatalf("FromR1CS failed: %v", err)
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("divisibility iff satisfied", prop.ForAll(
		func(z, x, y int64) bool {
			witness := NewWitness(row(field, 1, z, x, y))
			satisfied := r1cs.IsSatisfied(witness) == nil
			_, err := qap.Quotient(witness)
			return satisfied == (err == nil)
		},
		gen.Int64(), gen.Int64(), gen.Int64(),
	))

	properties.Property("constructed satisfying witnesses always divide", prop.ForAll(
		func(x int64) bool {
			xe := field.NewElementFromInt64(x)
			ye := xe.Mul(xe)
			ze := ye.Mul(xe)
			witness := NewWitness([]*core.FieldElement{field.One(), ze, xe, ye})
			_, err := qap.Quotient(witness)
			return err == nil
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}
