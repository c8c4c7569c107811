package core

import (
	"fmt"
	"strings"
)

// Polynomial represents a polynomial with coefficients in a finite field.
// Coefficients are stored dense, lowest degree first, with leading zeros
// trimmed; the zero polynomial is the single coefficient 0.
type Polynomial struct {
	coefficients []*FieldElement
	field        *Field
}

// NewPolynomial creates a new polynomial from field elements
func NewPolynomial(coefficients []*FieldElement) (*Polynomial, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("polynomial must have at least one coefficient")
	}

	field := coefficients[0].Field()
	for i, coeff := range coefficients {
		if !coeff.Field().Equals(field) {
			return nil, fmt.Errorf("coefficient %d is from a different field", i)
		}
	}

	// Trim leading zeros
	last := 0
	for i := len(coefficients) - 1; i >= 0; i-- {
		if !coefficients[i].IsZero() {
			last = i
			break
		}
	}
	trimmed := make([]*FieldElement, last+1)
	copy(trimmed, coefficients[:last+1])

	return &Polynomial{
		coefficients: trimmed,
		field:        field,
	}, nil
}

// NewPolynomialFromInt64 creates a polynomial from int64 coefficients
func NewPolynomialFromInt64(field *Field, coefficients []int64) (*Polynomial, error) {
	fieldCoeffs := make([]*FieldElement, len(coefficients))
	for i, coeff := range coefficients {
		fieldCoeffs[i] = field.NewElementFromInt64(coeff)
	}
	return NewPolynomial(fieldCoeffs)
}

// ZeroPolynomial returns the zero polynomial over the field
func ZeroPolynomial(field *Field) *Polynomial {
	return &Polynomial{
		coefficients: []*FieldElement{field.Zero()},
		field:        field,
	}
}

// Degree returns the degree of the polynomial. The zero polynomial has
// degree 0 under this representation.
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// IsZero reports whether the polynomial is identically zero
func (p *Polynomial) IsZero() bool {
	return len(p.coefficients) == 1 && p.coefficients[0].IsZero()
}

// Field returns the field the polynomial is defined over
func (p *Polynomial) Field() *Field {
	return p.field
}

// Coefficient returns the coefficient of the given degree
func (p *Polynomial) Coefficient(degree int) *FieldElement {
	if degree < 0 || degree >= len(p.coefficients) {
		return p.field.Zero()
	}
	return p.coefficients[degree]
}

// LeadingCoefficient returns the coefficient of the highest degree term
func (p *Polynomial) LeadingCoefficient() *FieldElement {
	return p.coefficients[len(p.coefficients)-1]
}

// Coefficients returns a copy of the polynomial coefficients
func (p *Polynomial) Coefficients() []*FieldElement {
	coeffs := make([]*FieldElement, len(p.coefficients))
	copy(coeffs, p.coefficients)
	return coeffs
}

// Eval evaluates the polynomial at the given point using Horner's rule
func (p *Polynomial) Eval(point *FieldElement) *FieldElement {
	if !point.Field().Equals(p.field) {
		panic("cannot evaluate polynomial at point from different field")
	}

	result := p.field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(point).Add(p.coefficients[i])
	}
	return result
}

// Add adds two polynomials
func (p *Polynomial) Add(other *Polynomial) (*Polynomial, error) {
	if !p.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot add polynomials from different fields")
	}

	maxDegree := max(p.Degree(), other.Degree())
	coefficients := make([]*FieldElement, maxDegree+1)
	for i := 0; i <= maxDegree; i++ {
		coefficients[i] = p.Coefficient(i).Add(other.Coefficient(i))
	}

	return NewPolynomial(coefficients)
}

// Sub subtracts two polynomials
func (p *Polynomial) Sub(other *Polynomial) (*Polynomial, error) {
	if !p.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot subtract polynomials from different fields")
	}

	maxDegree := max(p.Degree(), other.Degree())
	coefficients := make([]*FieldElement, maxDegree+1)
	for i := 0; i <= maxDegree; i++ {
		coefficients[i] = p.Coefficient(i).Sub(other.Coefficient(i))
	}

	return NewPolynomial(coefficients)
}

// Mul multiplies two polynomials with the schoolbook O(n*m) algorithm
func (p *Polynomial) Mul(other *Polynomial) (*Polynomial, error) {
	if !p.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot multiply polynomials from different fields")
	}

	coefficients := make([]*FieldElement, p.Degree()+other.Degree()+1)
	for i := range coefficients {
		coefficients[i] = p.field.Zero()
	}

	for i, coeff1 := range p.coefficients {
		for j, coeff2 := range other.coefficients {
			coefficients[i+j] = coefficients[i+j].Add(coeff1.Mul(coeff2))
		}
	}

	return NewPolynomial(coefficients)
}

// MulScalar multiplies the polynomial by a scalar
func (p *Polynomial) MulScalar(scalar *FieldElement) (*Polynomial, error) {
	if !scalar.Field().Equals(p.field) {
		return nil, fmt.Errorf("cannot multiply by scalar from different field")
	}

	coefficients := make([]*FieldElement, len(p.coefficients))
	for i, coeff := range p.coefficients {
		coefficients[i] = coeff.Mul(scalar)
	}

	return NewPolynomial(coefficients)
}

// Div performs polynomial long division, returning quotient and
// remainder such that p = quotient*other + remainder with
// deg(remainder) < deg(other). Division is exact field arithmetic;
// dividing by the zero polynomial fails.
func (p *Polynomial) Div(other *Polynomial) (*Polynomial, *Polynomial, error) {
	if !p.field.Equals(other.field) {
		return nil, nil, fmt.Errorf("cannot divide polynomials from different fields")
	}
	if other.IsZero() {
		return nil, nil, fmt.Errorf("polynomial division: %w", ErrDivisionByZero)
	}

	if other.Degree() > p.Degree() {
		return ZeroPolynomial(p.field), p.Clone(), nil
	}

	leadInv, err := other.LeadingCoefficient().Inv()
	if err != nil {
		return nil, nil, fmt.Errorf("polynomial division: %w", err)
	}

	remainder := p.Coefficients()
	quotient := make([]*FieldElement, p.Degree()-other.Degree()+1)
	for i := range quotient {
		quotient[i] = p.field.Zero()
	}

	// Cancel the leading term of the running remainder at each step
	for d := len(remainder) - 1; d >= other.Degree(); d-- {
		if remainder[d].IsZero() {
			continue
		}
		factor := remainder[d].Mul(leadInv)
		shift := d - other.Degree()
		quotient[shift] = factor

		for j := 0; j <= other.Degree(); j++ {
			term := factor.Mul(other.Coefficient(j))
			remainder[shift+j] = remainder[shift+j].Sub(term)
		}
	}

	quotientPoly, err := NewPolynomial(quotient)
	if err != nil {
		return nil, nil, err
	}
	remainderPoly, err := NewPolynomial(remainder)
	if err != nil {
		return nil, nil, err
	}

	return quotientPoly, remainderPoly, nil
}

// Clone creates a copy of the polynomial
func (p *Polynomial) Clone() *Polynomial {
	coefficients := make([]*FieldElement, len(p.coefficients))
	copy(coefficients, p.coefficients)
	return &Polynomial{coefficients: coefficients, field: p.field}
}

// String returns a human-readable representation of the polynomial
func (p *Polynomial) String() string {
	var terms []string
	for i := p.Degree(); i >= 0; i-- {
		coeff := p.Coefficient(i)
		if coeff.IsZero() {
			continue
		}

		var term string
		switch {
		case i == 0:
			term = coeff.String()
		case i == 1 && coeff.IsOne():
			term = "x"
		case i == 1:
			term = coeff.String() + "x"
		case coeff.IsOne():
			term = fmt.Sprintf("x^%d", i)
		default:
			term = fmt.Sprintf("%sx^%d", coeff.String(), i)
		}
		terms = append(terms, term)
	}

	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

// Point represents a point for polynomial interpolation
type Point struct {
	X *FieldElement
	Y *FieldElement
}

// LagrangeInterpolation returns the unique polynomial of degree < n
// passing through the n given points. All x-coordinates must be
// distinct. Cost is O(n^2) field multiplications; the basis denominators
// are inverted in one batch.
func LagrangeInterpolation(points []Point, field *Field) (*Polynomial, error) {
	n := len(points)
	if n == 0 {
		return nil, fmt.Errorf("need at least one point for interpolation")
	}

	for i, point := range points {
		if !point.X.Field().Equals(field) || !point.Y.Field().Equals(field) {
			return nil, fmt.Errorf("point %d is from a different field", i)
		}
	}

	// denominators[i] = prod_{j != i} (x_i - x_j)
	denominators := make([]*FieldElement, n)
	for i := range points {
		d := field.One()
		for j := range points {
			if i == j {
				continue
			}
			diff := points[i].X.Sub(points[j].X)
			if diff.IsZero() {
				return nil, fmt.Errorf("duplicate x-coordinate at points %d and %d", i, j)
			}
			d = d.Mul(diff)
		}
		denominators[i] = d
	}

	invDenominators, err := field.BatchInv(denominators)
	if err != nil {
		return nil, fmt.Errorf("interpolation: %w", err)
	}

	result := ZeroPolynomial(field)
	for i, point := range points {
		// Basis numerator prod_{j != i} (x - x_j)
		basis, err := NewPolynomial([]*FieldElement{field.One()})
		if err != nil {
			return nil, err
		}
		for j := range points {
			if i == j {
				continue
			}
			linear, err := NewPolynomial([]*FieldElement{points[j].X.Neg(), field.One()})
			if err != nil {
				return nil, err
			}
			basis, err = basis.Mul(linear)
			if err != nil {
				return nil, err
			}
		}

		scale := point.Y.Mul(invDenominators[i])
		term, err := basis.MulScalar(scale)
		if err != nil {
			return nil, err
		}
		result, err = result.Add(term)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}
