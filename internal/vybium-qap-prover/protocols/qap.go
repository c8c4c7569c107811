package protocols

import (
	"errors"
	"fmt"

	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/core"
)

// ErrNonDivisible marks a combined polynomial with a nonzero remainder
// modulo the target polynomial. It always implies an unsatisfied or
// malformed instance and aborts proving.
var ErrNonDivisible = errors.New("combined polynomial is not divisible by target polynomial")

// QAP is the Quadratic Arithmetic Program form of an R1CS. For each
// witness position i it holds the polynomials A_i, B_i, C_i obtained by
// interpolating the i-th matrix columns over the constraint indices
// 1..n, plus the target polynomial Z(x) = (x-1)(x-2)...(x-n).
//
// The defining invariant: with A(x) = sum w_i A_i(x) (same for B, C),
// A(x)B(x) - C(x) is divisible by Z(x) exactly when w satisfies every
// constraint of the source R1CS.
type QAP struct {
	field   *core.Field
	aPolys  []*core.Polynomial
	bPolys  []*core.Polynomial
	cPolys  []*core.Polynomial
	target  *core.Polynomial
	numCons int
}

// FromR1CS transforms an R1CS into its QAP form by column-wise Lagrange
// interpolation. Cost is O(numVars * numCons^2).
func FromR1CS(r1cs *R1CS) (*QAP, error) {
	if r1cs == nil {
		return nil, fmt.Errorf("cannot build QAP from nil R1CS")
	}
	n := r1cs.NumConstraints()
	if n < 1 {
		return nil, fmt.Errorf("cannot build QAP from R1CS with no constraints")
	}
	for i := 0; i < n; i++ {
		if r1cs.A[i] == nil {
			return nil, fmt.Errorf("cannot build QAP: constraint %d was never set", i)
		}
	}

	field := r1cs.Field()

	// Interpolation nodes: constraint k lives at x = k+1
	xs := make([]*core.FieldElement, n)
	for k := 0; k < n; k++ {
		xs[k] = field.NewElementFromInt64(int64(k + 1))
	}

	interpolateColumns := func(matrix [][]*core.FieldElement) ([]*core.Polynomial, error) {
		polys := make([]*core.Polynomial, r1cs.NumVars())
		for i := 0; i < r1cs.NumVars(); i++ {
			column := r1cs.Column(matrix, i)
			points := make([]core.Point, n)
			for k := 0; k < n; k++ {
				points[k] = core.Point{X: xs[k], Y: column[k]}
			}
			poly, err := core.LagrangeInterpolation(points, field)
			if err != nil {
				return nil, fmt.Errorf("interpolating column %d: %w", i, err)
			}
			polys[i] = poly
		}
		return polys, nil
	}

	aPolys, err := interpolateColumns(r1cs.A)
	if err != nil {
		return nil, err
	}
	bPolys, err := interpolateColumns(r1cs.B)
	if err != nil {
		return nil, err
	}
	cPolys, err := interpolateColumns(r1cs.C)
	if err != nil {
		return nil, err
	}

	// Z(x) = prod_{k=1..n} (x - k)
	target, err := core.NewPolynomial([]*core.FieldElement{field.One()})
	if err != nil {
		return nil, err
	}
	for k := 0; k < n; k++ {
		linear, err := core.NewPolynomial([]*core.FieldElement{xs[k].Neg(), field.One()})
		if err != nil {
			return nil, err
		}
		target, err = target.Mul(linear)
		if err != nil {
			return nil, err
		}
	}

	return &QAP{
		field:   field,
		aPolys:  aPolys,
		bPolys:  bPolys,
		cPolys:  cPolys,
		target:  target,
		numCons: n,
	}, nil
}

// Field returns the field the QAP is defined over
func (q *QAP) Field() *core.Field {
	return q.field
}

// NumVars returns the witness length of the source R1CS
func (q *QAP) NumVars() int {
	return len(q.aPolys)
}

// NumConstraints returns the constraint count of the source R1CS
func (q *QAP) NumConstraints() int {
	return q.numCons
}

// Target returns the target polynomial Z(x)
func (q *QAP) Target() *core.Polynomial {
	return q.target
}

// CombinedPolys returns the witness-weighted sums
// A(x) = sum w_i A_i(x), B(x), C(x)
func (q *QAP) CombinedPolys(witness *Witness) (a, b, c *core.Polynomial, err error) {
	if witness == nil || len(witness.W) != q.NumVars() {
		got := 0
		if witness != nil {
			got = len(witness.W)
		}
		return nil, nil, nil, fmt.Errorf("witness length mismatch: expected %d, got %d", q.NumVars(), got)
	}

	combine := func(polys []*core.Polynomial) (*core.Polynomial, error) {
		acc := core.ZeroPolynomial(q.field)
		for i, poly := range polys {
			term, err := poly.MulScalar(witness.W[i])
			if err != nil {
				return nil, err
			}
			acc, err = acc.Add(term)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}

	if a, err = combine(q.aPolys); err != nil {
		return nil, nil, nil, err
	}
	if b, err = combine(q.bPolys); err != nil {
		return nil, nil, nil, err
	}
	if c, err = combine(q.cPolys); err != nil {
		return nil, nil, nil, err
	}
	return a, b, c, nil
}

// Combined returns P(x) = A(x)B(x) - C(x) for the witness
func (q *QAP) Combined(witness *Witness) (*core.Polynomial, error) {
	a, b, c, err := q.CombinedPolys(witness)
	if err != nil {
		return nil, err
	}
	ab, err := a.Mul(b)
	if err != nil {
		return nil, err
	}
	return ab.Sub(c)
}

// Quotient computes h(x) = P(x) / Z(x) by exact long division. A nonzero
// remainder fails with ErrNonDivisible, which signals an unsatisfied
// instance.
func (q *QAP) Quotient(witness *Witness) (*core.Polynomial, error) {
	combined, err := q.Combined(witness)
	if err != nil {
		return nil, err
	}

	quotient, remainder, err := combined.Div(q.target)
	if err != nil {
		return nil, fmt.Errorf("quotient division failed: %w", err)
	}
	if !remainder.IsZero() {
		return nil, fmt.Errorf("remainder of degree %d: %w", remainder.Degree(), ErrNonDivisible)
	}

	return quotient, nil
}
