package vybiumqapprover

import (
	"errors"
	"io"
	"math/big"

	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/circuit"
	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/core"
	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/protocols"
	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/utils"
)

// ProofSystem is the public entry point: it fixes the field and hash
// configuration and exposes circuit construction, proving and
// verification. Independent instances are fully isolated and may run
// concurrently.
type ProofSystem struct {
	field  *core.Field
	hasher core.Hasher
	config *Config
}

// NewProofSystem creates a proof system from the given configuration
func NewProofSystem(config *Config) (*ProofSystem, error) {
	if config == nil {
		config = DefaultConfig()
	}

	modulus, ok := new(big.Int).SetString(config.FieldModulus, 10)
	if !ok {
		return nil, &ProverError{
			Code:    ErrInvalidConfig,
			Message: "invalid field modulus: " + config.FieldModulus,
		}
	}

	internal := utils.DefaultConfig().WithFieldModulus(modulus)
	if config.HashFunction != "" {
		internal.WithHashFunction(config.HashFunction)
	}
	if err := internal.Validate(); err != nil {
		return nil, &ProverError{
			Code:    ErrInvalidConfig,
			Message: "invalid configuration",
			Cause:   err,
		}
	}

	field, err := core.NewField(modulus)
	if err != nil {
		return nil, &ProverError{
			Code:    ErrFieldCreation,
			Message: "failed to create field",
			Cause:   err,
		}
	}

	hasher, err := core.NewHasher(internal.HashFunction, field)
	if err != nil {
		return nil, &ProverError{
			Code:    ErrInvalidConfig,
			Message: "failed to create hasher",
			Cause:   err,
		}
	}

	return &ProofSystem{
		field:  field,
		hasher: hasher,
		config: config,
	}, nil
}

// Field returns the finite field the system operates over
func (ps *ProofSystem) Field() *Field {
	return ps.field
}

// NewCircuit creates an empty circuit over the system's field
func (ps *ProofSystem) NewCircuit() *Circuit {
	return circuit.NewCircuit(ps.field)
}

// NewR1CS creates an R1CS instance from explicit shape parameters;
// constraints are then filled in with SetConstraint
func (ps *ProofSystem) NewR1CS(numVars, numCons, numPublic int) (*R1CS, error) {
	r1cs, err := protocols.NewR1CS(ps.field, numVars, numCons, numPublic)
	if err != nil {
		return nil, &ProverError{
			Code:    ErrConstraintShape,
			Message: "failed to create R1CS",
			Cause:   err,
		}
	}
	return r1cs, nil
}

// Prove generates a proof that the witness satisfies the constraint
// system. Failures are fail-fast: no Proof object exists unless every
// step succeeded.
func (ps *ProofSystem) Prove(r1cs *R1CS, witness *Witness) (*Proof, error) {
	prover, err := protocols.NewProver(r1cs, ps.hasher)
	if err != nil {
		return nil, &ProverError{
			Code:    ErrProofGeneration,
			Message: "failed to create prover",
			Cause:   err,
		}
	}

	proof, err := prover.Prove(witness)
	if err != nil {
		return nil, &ProverError{
			Code:    proveErrorCode(err),
			Message: "proof generation failed",
			Cause:   err,
		}
	}
	return proof, nil
}

// proveErrorCode maps internal proving failures onto the public taxonomy
func proveErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, protocols.ErrUnsatisfied):
		return ErrUnsatisfiedWitness
	case errors.Is(err, protocols.ErrNonDivisible):
		return ErrNonDivisible
	case errors.Is(err, core.ErrDivisionByZero):
		return ErrProofGeneration
	default:
		return ErrProofGeneration
	}
}

// Verify checks a proof against the public description of the
// constraint system and the declared public inputs. A rejected proof is
// a normal outcome reported in the result, never an error.
func (ps *ProofSystem) Verify(r1cs *R1CS, publicInputs []*FieldElement, proof *Proof) (*VerificationResult, error) {
	verifier, err := protocols.NewVerifier(r1cs, ps.hasher)
	if err != nil {
		return nil, &ProverError{
			Code:    ErrInvalidInput,
			Message: "failed to create verifier",
			Cause:   err,
		}
	}

	return verifier.Verify(publicInputs, proof), nil
}

// WriteProof serializes a proof to the given writer
func (ps *ProofSystem) WriteProof(w io.Writer, proof *Proof) error {
	if err := proof.Serialize(w); err != nil {
		return &ProverError{
			Code:    ErrInvalidInput,
			Message: "failed to serialize proof",
			Cause:   err,
		}
	}
	return nil
}

// ReadProof deserializes a proof from the given reader
func (ps *ProofSystem) ReadProof(r io.Reader) (*Proof, error) {
	proof, err := protocols.DeserializeProof(r, ps.field)
	if err != nil {
		return nil, &ProverError{
			Code:    ErrInvalidInput,
			Message: "failed to deserialize proof",
			Cause:   err,
		}
	}
	return proof, nil
}
