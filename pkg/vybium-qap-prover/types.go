package vybiumqapprover

import (
	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/circuit"
	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/core"
	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/protocols"
)

// FieldElement represents an element in a finite field.
// This is the public type for field elements used throughout the prover.
type FieldElement = core.FieldElement

// Field represents a finite field
type Field = core.Field

// R1CS represents a rank-1 constraint system
type R1CS = protocols.R1CS

// Witness represents a full variable assignment for an R1CS instance
type Witness = protocols.Witness

// Proof represents a non-interactive proof of constraint satisfaction
type Proof = protocols.Proof

// VerificationResult represents the outcome of proof verification;
// rejection is a value, never a crash
type VerificationResult = protocols.VerificationResult

// Circuit is the arithmetic-circuit frontend compiled into an R1CS
type Circuit = circuit.Circuit

// Config represents configuration for the prover/verifier. Both sides
// must agree on every value here.
type Config struct {
	// FieldModulus is the prime field modulus, base 10
	FieldModulus string

	// HashFunction selects the Merkle and Fiat-Shamir hash:
	// "sha256", "sha3", "poseidon" or "rescue"
	HashFunction string
}

// DefaultConfig returns the default prover configuration
func DefaultConfig() *Config {
	return &Config{
		FieldModulus: "1000000007",
		HashFunction: "sha3",
	}
}
