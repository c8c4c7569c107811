package protocols

import (
	"fmt"

	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/core"
	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/logger"
	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/utils"
)

// VerificationResult reports the outcome of proof verification.
// Rejection is a normal result, not an error: malformed and adversarial
// proofs are an expected input class.
type VerificationResult struct {
	Valid  bool
	Reason string
}

// Verifier checks proofs against the public description of one R1CS
// instance. It never sees a witness; it relies only on the public QAP
// structure, the declared public inputs and the proof contents.
type Verifier struct {
	field  *core.Field
	r1cs   *R1CS
	qap    *QAP
	hasher core.Hasher
}

// NewVerifier creates a verifier for the given constraint system
func NewVerifier(r1cs *R1CS, hasher core.Hasher) (*Verifier, error) {
	qap, err := FromR1CS(r1cs)
	if err != nil {
		return nil, fmt.Errorf("failed to build QAP: %w", err)
	}

	return &Verifier{
		field:  r1cs.Field(),
		r1cs:   r1cs,
		qap:    qap,
		hasher: hasher,
	}, nil
}

func reject(format string, args ...any) *VerificationResult {
	return &VerificationResult{Valid: false, Reason: fmt.Sprintf(format, args...)}
}

// Verify checks the proof against the declared public inputs.
// Acceptance requires both the scalar QAP identity at the re-derived
// challenge point and every inclusion proof binding the public witness
// prefix to the commitment root.
func (v *Verifier) Verify(publicInputs []*core.FieldElement, proof *Proof) *VerificationResult {
	log := logger.Logger().With().Str("component", "verifier").Logger()

	if proof == nil {
		return reject("no proof supplied")
	}
	if len(proof.Root) == 0 {
		return reject("proof has no commitment root")
	}
	if len(publicInputs) != v.r1cs.NumPublic() {
		return reject("public input count mismatch: expected %d, got %d",
			v.r1cs.NumPublic(), len(publicInputs))
	}
	if len(proof.PublicInputs) != v.r1cs.NumPublic() {
		return reject("proof declares %d public inputs, expected %d",
			len(proof.PublicInputs), v.r1cs.NumPublic())
	}
	for i, pub := range publicInputs {
		if !pub.Equal(proof.PublicInputs[i]) {
			return reject("public input %d differs from the proof's declared value", i)
		}
	}
	if proof.AEval == nil || proof.BEval == nil || proof.CEval == nil || proof.HEval == nil {
		return reject("proof is missing evaluations")
	}

	// Re-derive the challenge; a prover-chosen point is worthless
	challenge := deriveChallenge(v.hasher, v.field, proof.Root, publicInputs)
	log.Debug().Str("challenge", challenge.String()).Msg("challenge re-derived")

	// Scalar identity A(s)B(s) - C(s) = h(s)Z(s) at the challenge s.
	// Z comes from public data only; the combined evaluations are the
	// prover's declared values, bound by the commitment.
	zEval := v.qap.Target().Eval(challenge)
	left := proof.AEval.Mul(proof.BEval).Sub(proof.CEval)
	right := proof.HEval.Mul(zEval)
	if !left.Equal(right) {
		return reject("QAP identity does not hold at the challenge point")
	}

	// Openings must cover exactly the public prefix: the constant one
	// at index 0, then each public input at its witness position.
	if len(proof.Openings) != v.r1cs.NumPublic()+1 {
		return reject("expected %d openings, got %d", v.r1cs.NumPublic()+1, len(proof.Openings))
	}
	// The commitment tree has numVars leaves padded to a power of two,
	// so every valid path has exactly this many siblings
	depth := utils.CeilLog2(v.r1cs.NumVars())
	for i, opening := range proof.Openings {
		if opening == nil {
			return reject("opening %d is missing", i)
		}
		if opening.Index != i {
			return reject("opening %d proves position %d", i, opening.Index)
		}
		if len(opening.Siblings) != depth {
			return reject("opening %d has %d siblings, expected %d", i, len(opening.Siblings), depth)
		}

		var leaf []byte
		if i == 0 {
			leaf = v.field.One().Bytes()
		} else {
			leaf = publicInputs[i-1].Bytes()
		}
		if !core.VerifyProof(proof.Root, leaf, opening, v.hasher) {
			return reject("inclusion proof for witness position %d failed", i)
		}
	}

	log.Debug().Msg("proof accepted")
	return &VerificationResult{Valid: true}
}
