package protocols

import (
	"fmt"

	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/core"
	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/logger"
	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/utils"
)

// Prover generates proofs for one R1CS instance. The QAP form is
// derived once at construction and reused across witnesses.
type Prover struct {
	field  *core.Field
	r1cs   *R1CS
	qap    *QAP
	hasher core.Hasher
}

// NewProver creates a prover for the given constraint system
func NewProver(r1cs *R1CS, hasher core.Hasher) (*Prover, error) {
	qap, err := FromR1CS(r1cs)
	if err != nil {
		return nil, fmt.Errorf("failed to build QAP: %w", err)
	}

	return &Prover{
		field:  r1cs.Field(),
		r1cs:   r1cs,
		qap:    qap,
		hasher: hasher,
	}, nil
}

// deriveChallenge replays the Fiat-Shamir transcript: the commitment
// root first, then every public input in index order. Prover and
// verifier both call this, so a verifier never trusts a prover-supplied
// challenge.
func deriveChallenge(hasher core.Hasher, field *core.Field, root []byte, publicInputs []*core.FieldElement) *core.FieldElement {
	channel := utils.NewChannel(hasher)
	channel.Send(root)
	for _, pub := range publicInputs {
		channel.Send(pub.Bytes())
	}
	return channel.ReceiveRandomFieldElement(field)
}

// Prove generates a proof that the witness satisfies the constraint
// system, without revealing its private positions. Any failure aborts
// before a Proof object exists: an unsatisfied witness surfaces as
// ErrUnsatisfied (or ErrNonDivisible at the polynomial level), a
// commitment failure as its own error.
func (p *Prover) Prove(witness *Witness) (*Proof, error) {
	log := logger.Logger().With().Str("component", "prover").Logger()

	// Fail fast on a bad witness; never emit a partial proof
	if err := p.r1cs.IsSatisfied(witness); err != nil {
		return nil, fmt.Errorf("refusing to prove: %w", err)
	}

	// Commit to the full witness before any challenge exists
	leaves := make([][]byte, len(witness.W))
	for i, w := range witness.W {
		leaves[i] = w.Bytes()
	}
	tree, err := core.NewMerkleTree(leaves, p.hasher)
	if err != nil {
		return nil, fmt.Errorf("witness commitment failed: %w", err)
	}
	root := tree.Root()
	log.Debug().Int("leaves", len(leaves)).Int("depth", tree.Depth()).Msg("witness committed")

	publicInputs := witness.W[1 : p.r1cs.NumPublic()+1]
	challenge := deriveChallenge(p.hasher, p.field, root, publicInputs)
	log.Debug().Str("challenge", challenge.String()).Msg("challenge derived")

	// h = (A*B - C) / Z must divide exactly for a satisfying witness
	quotient, err := p.qap.Quotient(witness)
	if err != nil {
		return nil, fmt.Errorf("quotient computation failed: %w", err)
	}

	aPoly, bPoly, cPoly, err := p.qap.CombinedPolys(witness)
	if err != nil {
		return nil, err
	}

	// Openings for the public prefix: constant one plus public inputs
	openings := make([]*core.InclusionProof, p.r1cs.NumPublic()+1)
	for i := range openings {
		opening, err := tree.Open(i)
		if err != nil {
			return nil, fmt.Errorf("failed to open witness position %d: %w", i, err)
		}
		openings[i] = opening
	}

	proof := &Proof{
		Root:         root,
		AEval:        aPoly.Eval(challenge),
		BEval:        bPoly.Eval(challenge),
		CEval:        cPoly.Eval(challenge),
		HEval:        quotient.Eval(challenge),
		PublicInputs: append([]*core.FieldElement(nil), publicInputs...),
		Openings:     openings,
	}
	log.Debug().Int("openings", len(openings)).Msg("proof assembled")

	return proof, nil
}
