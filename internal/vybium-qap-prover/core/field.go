package core

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// primalityRounds is the number of Miller-Rabin rounds used when
// validating a field modulus. big.Int.ProbablyPrime with 20 rounds is
// exact for all 64-bit inputs.
const primalityRounds = 20

// ErrDivisionByZero is returned when inverting or dividing by the
// additive identity.
var ErrDivisionByZero = errors.New("division by zero in field")

// Field represents a finite field of prime order. The modulus is carried
// explicitly so that fields with different moduli can coexist in one
// process.
type Field struct {
	modulus *big.Int
}

// FieldElement represents an element in a finite field. Elements are
// immutable: every operation returns a new, fully reduced element.
type FieldElement struct {
	field *Field
	value *big.Int
}

// NewField creates a new finite field with the given prime modulus
func NewField(modulus *big.Int) (*Field, error) {
	if modulus == nil || modulus.Cmp(big.NewInt(1)) <= 0 {
		return nil, fmt.Errorf("field modulus must be greater than 1")
	}
	if !modulus.ProbablyPrime(primalityRounds) {
		return nil, fmt.Errorf("field modulus %s is not prime", modulus.String())
	}
	return &Field{modulus: new(big.Int).Set(modulus)}, nil
}

// NewFieldFromUint64 creates a new finite field with the given modulus
func NewFieldFromUint64(modulus uint64) (*Field, error) {
	return NewField(new(big.Int).SetUint64(modulus))
}

// Modulus returns a copy of the field modulus
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// Equals reports whether two fields have the same modulus
func (f *Field) Equals(other *Field) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

// ElementSize returns the number of bytes of the fixed-width encoding of
// an element of this field
func (f *Field) ElementSize() int {
	return len(f.modulus.Bytes())
}

// NewElement creates a new field element from a big.Int, reducing it into
// [0, modulus)
func (f *Field) NewElement(value *big.Int) *FieldElement {
	normalized := new(big.Int).Mod(value, f.modulus)
	if normalized.Sign() < 0 {
		normalized.Add(normalized, f.modulus)
	}
	return &FieldElement{
		field: f,
		value: normalized,
	}
}

// NewElementFromInt64 creates a new field element from an int64
func (f *Field) NewElementFromInt64(value int64) *FieldElement {
	return f.NewElement(big.NewInt(value))
}

// NewElementFromUint64 creates a new field element from a uint64
func (f *Field) NewElementFromUint64(value uint64) *FieldElement {
	return f.NewElement(new(big.Int).SetUint64(value))
}

// NewElementFromBytes creates a new field element from big-endian bytes
func (f *Field) NewElementFromBytes(data []byte) *FieldElement {
	return f.NewElement(new(big.Int).SetBytes(data))
}

// RandomElement generates a uniformly random field element
func (f *Field) RandomElement() (*FieldElement, error) {
	value, err := rand.Int(rand.Reader, f.modulus)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random element: %w", err)
	}
	return f.NewElement(value), nil
}

// Zero returns the additive identity
func (f *Field) Zero() *FieldElement {
	return f.NewElement(big.NewInt(0))
}

// One returns the multiplicative identity
func (f *Field) One() *FieldElement {
	return f.NewElement(big.NewInt(1))
}

// Big returns the value as a big.Int
func (fe *FieldElement) Big() *big.Int {
	return new(big.Int).Set(fe.value)
}

// Field returns the field this element belongs to
func (fe *FieldElement) Field() *Field {
	return fe.field
}

// Add performs field addition
func (fe *FieldElement) Add(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot add elements from different fields")
	}
	result := new(big.Int).Add(fe.value, other.value)
	return fe.field.NewElement(result)
}

// Sub performs field subtraction
func (fe *FieldElement) Sub(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot subtract elements from different fields")
	}
	result := new(big.Int).Sub(fe.value, other.value)
	return fe.field.NewElement(result)
}

// Neg returns the additive inverse (negation) of the field element
func (fe *FieldElement) Neg() *FieldElement {
	result := new(big.Int).Neg(fe.value)
	return fe.field.NewElement(result)
}

// Mul performs field multiplication
func (fe *FieldElement) Mul(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot multiply elements from different fields")
	}
	result := new(big.Int).Mul(fe.value, other.value)
	return fe.field.NewElement(result)
}

// Div performs field division (multiplication by inverse)
func (fe *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	if !fe.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot divide elements from different fields")
	}
	inv, err := other.Inv()
	if err != nil {
		return nil, err
	}
	return fe.Mul(inv), nil
}

// Inv computes the multiplicative inverse. Inverting zero fails with
// ErrDivisionByZero.
func (fe *FieldElement) Inv() (*FieldElement, error) {
	if fe.value.Sign() == 0 {
		return nil, ErrDivisionByZero
	}

	inv := new(big.Int).ModInverse(fe.value, fe.field.modulus)
	if inv == nil {
		// Unreachable for a prime modulus and a nonzero reduced value,
		// kept as a guard against a corrupted field.
		return nil, fmt.Errorf("inverse of %s does not exist", fe.value.String())
	}

	return fe.field.NewElement(inv), nil
}

// Exp performs field exponentiation by repeated squaring
func (fe *FieldElement) Exp(exponent *big.Int) *FieldElement {
	result := new(big.Int).Exp(fe.value, exponent, fe.field.modulus)
	return fe.field.NewElement(result)
}

// Square computes the square of the field element
func (fe *FieldElement) Square() *FieldElement {
	return fe.Mul(fe)
}

// Equal checks if two field elements are equal
func (fe *FieldElement) Equal(other *FieldElement) bool {
	if !fe.field.Equals(other.field) {
		return false
	}
	return fe.value.Cmp(other.value) == 0
}

// IsZero checks if the element is zero
func (fe *FieldElement) IsZero() bool {
	return fe.value.Sign() == 0
}

// IsOne checks if the element is one
func (fe *FieldElement) IsOne() bool {
	return fe.value.Cmp(big.NewInt(1)) == 0
}

// String returns a string representation of the field element
func (fe *FieldElement) String() string {
	return fe.value.String()
}

// Bytes returns the fixed-width big-endian encoding of the field element.
// The width is determined by the field modulus, so equal elements of one
// field always encode to identical byte strings.
func (fe *FieldElement) Bytes() []byte {
	size := fe.field.ElementSize()
	return fe.value.FillBytes(make([]byte, size))
}
