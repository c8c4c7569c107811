package vybiumqapprover

import "fmt"

// ErrorCode represents a prover error code
type ErrorCode int

const (
	// ErrUnknown represents an unknown error
	ErrUnknown ErrorCode = iota

	// ErrInvalidConfig represents an invalid configuration error
	ErrInvalidConfig

	// ErrFieldCreation represents a field creation error (malformed modulus)
	ErrFieldCreation

	// ErrConstraintShape represents a coefficient-vector length mismatch
	// against the witness length
	ErrConstraintShape

	// ErrUnsatisfiedWitness represents a witness violating at least one
	// constraint; proving aborts before a proof exists
	ErrUnsatisfiedWitness

	// ErrNonDivisible represents a nonzero remainder in the QAP quotient
	// computation, implying an unsatisfied or malformed instance
	ErrNonDivisible

	// ErrCommitment represents a Merkle commitment failure (empty leaf
	// sequence, index out of range)
	ErrCommitment

	// ErrProofGeneration represents any other proof generation error
	ErrProofGeneration

	// ErrInvalidInput represents an invalid input error
	ErrInvalidInput
)

// ProverError represents an error raised at the public API boundary.
// Note that proof rejection is NOT an error: Verify reports it as a
// VerificationResult value.
type ProverError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error returns the error message
func (e *ProverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vybium-qap-prover error [%d]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("vybium-qap-prover error [%d]: %s", e.Code, e.Message)
}

// Unwrap returns the cause of the error
func (e *ProverError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error
func (e *ProverError) Is(target error) bool {
	t, ok := target.(*ProverError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
