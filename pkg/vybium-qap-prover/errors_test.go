package vybiumqapprover

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestProverErrorMessage tests message formatting with and without cause
func TestProverErrorMessage(t *testing.T) {
	bare := &ProverError{Code: ErrInvalidConfig, Message: "bad modulus"}
	if !strings.Contains(bare.Error(), "bad modulus") {
		t.Errorf("Error() = %q", bare.Error())
	}

	caused := &ProverError{
		Code:    ErrProofGeneration,
		Message: "proof generation failed",
		Cause:   fmt.Errorf("underlying failure"),
	}
	msg := caused.Error()
	if !strings.Contains(msg, "proof generation failed") || !strings.Contains(msg, "underlying failure") {
		t.Errorf("Error() = %q", msg)
	}
}

// TestProverErrorIs tests code-based matching
func TestProverErrorIs(t *testing.T) {
	err := &ProverError{Code: ErrUnsatisfiedWitness, Message: "witness check failed"}

	if !errors.Is(err, &ProverError{Code: ErrUnsatisfiedWitness}) {
		t.Error("errors with matching codes should compare equal")
	}
	if errors.Is(err, &ProverError{Code: ErrInvalidConfig}) {
		t.Error("errors with different codes should not compare equal")
	}
	if errors.Is(err, errors.New("witness check failed")) {
		t.Error("ProverError should not match a plain error")
	}
}

// TestProverErrorUnwrap tests cause chains survive errors.Is
func TestProverErrorUnwrap(t *testing.T) {
	sentinel := errors.New("root cause")
	err := &ProverError{
		Code:    ErrCommitment,
		Message: "commitment failed",
		Cause:   fmt.Errorf("wrapping: %w", sentinel),
	}

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should reach the root cause through Unwrap")
	}
	if errors.Unwrap(err) == nil {
		t.Error("Unwrap returned nil despite a cause")
	}
}
