package core

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// Hasher is the hash collaborator used for Merkle nodes and Fiat-Shamir
// challenge derivation. The pipeline depends only on this contract:
// deterministic, fixed-width output.
type Hasher interface {
	// Sum returns the digest of data
	Sum(data []byte) []byte
	// Size returns the digest length in bytes
	Size() int
}

// NewHasher returns the hasher registered under the given name.
// Supported: "sha256", "sha3", "poseidon", "rescue". The field-friendly
// hashers absorb the input as field elements of the given field; field
// may be nil for the byte-oriented hashers.
func NewHasher(name string, field *Field) (Hasher, error) {
	switch name {
	case "sha256":
		return sha256Hasher{}, nil
	case "sha3", "":
		return sha3Hasher{}, nil
	case "poseidon":
		if field == nil {
			return nil, fmt.Errorf("poseidon hasher requires a field")
		}
		return &PoseidonHash{field: field, roundsFull: 8, roundsPartial: 57, sboxPower: 5}, nil
	case "rescue":
		if field == nil {
			return nil, fmt.Errorf("rescue hasher requires a field")
		}
		return &RescueHash{field: field, rounds: 10, sboxPower: 3}, nil
	default:
		return nil, fmt.Errorf("unknown hash function %q", name)
	}
}

type sha256Hasher struct{}

func (sha256Hasher) Sum(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

func (sha256Hasher) Size() int { return sha256.Size }

type sha3Hasher struct{}

func (sha3Hasher) Sum(data []byte) []byte {
	h := sha3.Sum256(data)
	return h[:]
}

func (sha3Hasher) Size() int { return 32 }

// PoseidonHash is a basic Poseidon sponge over a prime field. It exists
// so that commitments stay cheap to verify inside an arithmetic circuit;
// for byte inputs it absorbs 4-byte limbs as field elements.
type PoseidonHash struct {
	field         *Field
	roundsFull    int
	roundsPartial int
	sboxPower     int
}

// HashElements computes the Poseidon hash of the input elements
func (p *PoseidonHash) HashElements(inputs []*FieldElement) *FieldElement {
	state := []*FieldElement{p.field.Zero(), p.field.Zero()}

	for _, input := range inputs {
		state[1] = state[1].Add(input)
		state = p.permutation(state)
	}

	return state[0]
}

// Sum hashes a byte slice by absorbing it as field elements, returning a
// 32-byte big-endian digest
func (p *PoseidonHash) Sum(data []byte) []byte {
	return elementDigest(p.HashElements(bytesToElements(p.field, data)))
}

// Size returns the digest length in bytes
func (p *PoseidonHash) Size() int { return 32 }

func (p *PoseidonHash) permutation(state []*FieldElement) []*FieldElement {
	for round := 0; round < p.roundsFull/2; round++ {
		state = p.fullRound(state, round)
	}
	for round := 0; round < p.roundsPartial; round++ {
		state = p.partialRound(state, round)
	}
	for round := 0; round < p.roundsFull/2; round++ {
		state = p.fullRound(state, round)
	}
	return state
}

func (p *PoseidonHash) fullRound(state []*FieldElement, round int) []*FieldElement {
	roundConstant := p.field.NewElementFromInt64(int64(round + 1))
	for i := range state {
		state[i] = p.sbox(state[i].Add(roundConstant))
	}
	state[0] = state[0].Add(state[1])
	state[1] = state[1].Add(state[0])
	return state
}

func (p *PoseidonHash) partialRound(state []*FieldElement, round int) []*FieldElement {
	roundConstant := p.field.NewElementFromInt64(int64(round + 100))
	state[0] = p.sbox(state[0].Add(roundConstant))
	state[0] = state[0].Add(state[1])
	state[1] = state[1].Add(state[0])
	return state
}

func (p *PoseidonHash) sbox(x *FieldElement) *FieldElement {
	return x.Exp(big.NewInt(int64(p.sboxPower)))
}

// RescueHash is a basic Rescue sponge over a prime field, provided as an
// alternative field-friendly hasher
type RescueHash struct {
	field     *Field
	rounds    int
	sboxPower int
}

// HashElements computes the Rescue hash of the input elements
func (r *RescueHash) HashElements(inputs []*FieldElement) *FieldElement {
	state := []*FieldElement{r.field.Zero(), r.field.Zero()}

	for _, input := range inputs {
		state[1] = state[1].Add(input)
		state = r.permutation(state)
	}

	return state[0]
}

// Sum hashes a byte slice by absorbing it as field elements, returning a
// 32-byte big-endian digest
func (r *RescueHash) Sum(data []byte) []byte {
	return elementDigest(r.HashElements(bytesToElements(r.field, data)))
}

// Size returns the digest length in bytes
func (r *RescueHash) Size() int { return 32 }

func (r *RescueHash) permutation(state []*FieldElement) []*FieldElement {
	for round := 0; round < r.rounds; round++ {
		state = r.forwardRound(state, round)
		state = r.backwardRound(state, round)
	}
	return state
}

func (r *RescueHash) forwardRound(state []*FieldElement, round int) []*FieldElement {
	roundConstant := r.field.NewElementFromInt64(int64(round + 1))
	for i := range state {
		state[i] = r.sbox(state[i].Add(roundConstant))
	}
	state[0] = state[0].Add(state[1])
	state[1] = state[1].Add(state[0])
	return state
}

func (r *RescueHash) backwardRound(state []*FieldElement, round int) []*FieldElement {
	// Inverse S-box: x^(1/sboxPower), exponent is the inverse of
	// sboxPower modulo p-1
	pMinusOne := new(big.Int).Sub(r.field.Modulus(), big.NewInt(1))
	inv := new(big.Int).ModInverse(big.NewInt(int64(r.sboxPower)), pMinusOne)

	roundConstant := r.field.NewElementFromInt64(int64(round + 1000))
	for i := range state {
		if inv != nil {
			state[i] = state[i].Exp(inv)
		}
		state[i] = state[i].Add(roundConstant)
	}
	state[0] = state[0].Add(state[1])
	state[1] = state[1].Add(state[0])
	return state
}

func (r *RescueHash) sbox(x *FieldElement) *FieldElement {
	return x.Exp(big.NewInt(int64(r.sboxPower)))
}

// bytesToElements absorbs a byte slice as field elements, 4 bytes per
// element, little-endian within a limb
func bytesToElements(field *Field, data []byte) []*FieldElement {
	var inputs []*FieldElement
	for i := 0; i < len(data); i += 4 {
		var value int64
		for j := 0; j < 4 && i+j < len(data); j++ {
			value |= int64(data[i+j]) << (8 * j)
		}
		inputs = append(inputs, field.NewElementFromInt64(value))
	}
	if len(inputs) == 0 {
		inputs = append(inputs, field.Zero())
	}
	return inputs
}

// elementDigest encodes a field element as a 32-byte big-endian digest
func elementDigest(e *FieldElement) []byte {
	raw := e.Big().Bytes()
	digest := make([]byte, 32)
	copy(digest[32-len(raw):], raw)
	return digest
}
