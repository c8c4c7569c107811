package protocols

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/core"
)

// Proof is the non-interactive proof object. It carries the Merkle root
// committing to the witness, the challenge-point evaluations of the
// combined QAP polynomials and of the quotient h, the public inputs the
// challenge was derived from, and the inclusion proofs binding the
// public witness prefix (constant one plus public inputs) to the root.
type Proof struct {
	Root []byte

	AEval *core.FieldElement
	BEval *core.FieldElement
	CEval *core.FieldElement
	HEval *core.FieldElement

	PublicInputs []*core.FieldElement

	Openings []*core.InclusionProof
}

// proofWire is the CBOR wire form of a Proof. Field elements travel as
// fixed-width big-endian bytes; the modulus itself is out-of-band
// configuration and is not serialized.
type proofWire struct {
	Root         []byte        `cbor:"1,keyasint"`
	AEval        []byte        `cbor:"2,keyasint"`
	BEval        []byte        `cbor:"3,keyasint"`
	CEval        []byte        `cbor:"4,keyasint"`
	HEval        []byte        `cbor:"5,keyasint"`
	PublicInputs [][]byte      `cbor:"6,keyasint"`
	Openings     []openingWire `cbor:"7,keyasint"`
}

type openingWire struct {
	Index    int      `cbor:"1,keyasint"`
	Siblings [][]byte `cbor:"2,keyasint"`
}

// Serialize writes the proof to the given writer in canonical CBOR
func (p *Proof) Serialize(w io.Writer) error {
	wire := proofWire{
		Root:         p.Root,
		AEval:        p.AEval.Bytes(),
		BEval:        p.BEval.Bytes(),
		CEval:        p.CEval.Bytes(),
		HEval:        p.HEval.Bytes(),
		PublicInputs: make([][]byte, len(p.PublicInputs)),
		Openings:     make([]openingWire, len(p.Openings)),
	}
	for i, pub := range p.PublicInputs {
		wire.PublicInputs[i] = pub.Bytes()
	}
	for i, opening := range p.Openings {
		wire.Openings[i] = openingWire{Index: opening.Index, Siblings: opening.Siblings}
	}

	opts, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return fmt.Errorf("failed to build proof encoder: %w", err)
	}
	if err := opts.NewEncoder(w).Encode(wire); err != nil {
		return fmt.Errorf("failed to encode proof: %w", err)
	}
	return nil
}

// DeserializeProof reads a proof from the given reader. The field is
// needed to rehydrate the serialized element bytes and must match the
// one the proof was produced over.
func DeserializeProof(r io.Reader, field *core.Field) (*Proof, error) {
	var wire proofWire
	if err := cbor.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode proof: %w", err)
	}

	proof := &Proof{
		Root:         wire.Root,
		AEval:        field.NewElementFromBytes(wire.AEval),
		BEval:        field.NewElementFromBytes(wire.BEval),
		CEval:        field.NewElementFromBytes(wire.CEval),
		HEval:        field.NewElementFromBytes(wire.HEval),
		PublicInputs: make([]*core.FieldElement, len(wire.PublicInputs)),
		Openings:     make([]*core.InclusionProof, len(wire.Openings)),
	}
	for i, pub := range wire.PublicInputs {
		proof.PublicInputs[i] = field.NewElementFromBytes(pub)
	}
	for i, opening := range wire.Openings {
		proof.Openings[i] = &core.InclusionProof{Index: opening.Index, Siblings: opening.Siblings}
	}

	return proof, nil
}
