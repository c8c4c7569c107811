package vybiumqapprover

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNewProofSystem tests configuration handling at the public boundary
func TestNewProofSystem(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{"nil config uses defaults", nil, false},
		{"default config", DefaultConfig(), false},
		{"small prime", &Config{FieldModulus: "101", HashFunction: "sha3"}, false},
		{"empty hash uses default", &Config{FieldModulus: "101"}, false},
		{"sha256", &Config{FieldModulus: "101", HashFunction: "sha256"}, false},
		{"poseidon", &Config{FieldModulus: "101", HashFunction: "poseidon"}, false},
		{"rescue", &Config{FieldModulus: "101", HashFunction: "rescue"}, false},
		{"garbage modulus", &Config{FieldModulus: "not-a-number", HashFunction: "sha3"}, true},
		{"composite modulus", &Config{FieldModulus: "100", HashFunction: "sha3"}, true},
		{"unknown hash", &Config{FieldModulus: "101", HashFunction: "md5"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps, err := NewProofSystem(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				var perr *ProverError
				require.True(t, errors.As(err, &perr))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, ps.Field())
		})
	}
}

// proveSquare builds x*x = out at p = 101 and returns everything the
// scenario tests need
func proveSquare(t *testing.T) (*ProofSystem, *Circuit, *R1CS) {
	t.Helper()
	ps, err := NewProofSystem(&Config{FieldModulus: "101", HashFunction: "sha3"})
	require.NoError(t, err)

	circ := ps.NewCircuit()
	out := circ.PublicInput()
	x := circ.PrivateInput()
	circ.AssertEqual(circ.Mul(x, x), out)

	r1cs, err := circ.Compile()
	require.NoError(t, err)
	return ps, circ, r1cs
}

// TestProveAndVerifySquare proves knowledge of a square root of 9
// modulo 101 and verifies it
func TestProveAndVerifySquare(t *testing.T) {
	ps, circ, r1cs := proveSquare(t)

	nine := ps.Field().NewElementFromInt64(9)
	three := ps.Field().NewElementFromInt64(3)
	witness, err := circ.Assign([]*FieldElement{nine}, []*FieldElement{three})
	require.NoError(t, err)

	proof, err := ps.Prove(r1cs, witness)
	require.NoError(t, err)

	result, err := ps.Verify(r1cs, []*FieldElement{nine}, proof)
	require.NoError(t, err)
	require.True(t, result.Valid, "valid proof rejected: %s", result.Reason)
}

// TestProveRejectsNonRoot verifies x = 4 cannot prove x*x = 9
func TestProveRejectsNonRoot(t *testing.T) {
	ps, circ, r1cs := proveSquare(t)

	nine := ps.Field().NewElementFromInt64(9)
	four := ps.Field().NewElementFromInt64(4)
	witness, err := circ.Assign([]*FieldElement{nine}, []*FieldElement{four})
	require.NoError(t, err)

	proof, err := ps.Prove(r1cs, witness)
	require.Nil(t, proof)
	require.True(t, errors.Is(err, &ProverError{Code: ErrUnsatisfiedWitness}), "error = %v", err)
}

// TestVerifyRejectsTamperedOpening verifies a flipped sibling hash in an
// inclusion proof is rejected
func TestVerifyRejectsTamperedOpening(t *testing.T) {
	ps, circ, r1cs := proveSquare(t)

	nine := ps.Field().NewElementFromInt64(9)
	three := ps.Field().NewElementFromInt64(3)
	witness, err := circ.Assign([]*FieldElement{nine}, []*FieldElement{three})
	require.NoError(t, err)

	proof, err := ps.Prove(r1cs, witness)
	require.NoError(t, err)

	proof.Openings[0].Siblings[0][0] ^= 1

	result, err := ps.Verify(r1cs, []*FieldElement{nine}, proof)
	require.NoError(t, err)
	require.False(t, result.Valid)
	require.NotEmpty(t, result.Reason)
}

// TestProofRoundTrip serializes a proof and verifies the received copy
func TestProofRoundTrip(t *testing.T) {
	ps, circ, r1cs := proveSquare(t)

	nine := ps.Field().NewElementFromInt64(9)
	three := ps.Field().NewElementFromInt64(3)
	witness, err := circ.Assign([]*FieldElement{nine}, []*FieldElement{three})
	require.NoError(t, err)

	proof, err := ps.Prove(r1cs, witness)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ps.WriteProof(&buf, proof))

	received, err := ps.ReadProof(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	result, err := ps.Verify(r1cs, []*FieldElement{nine}, received)
	require.NoError(t, err)
	require.True(t, result.Valid, "deserialized proof rejected: %s", result.Reason)

	_, err = ps.ReadProof(bytes.NewReader([]byte("not cbor")))
	require.Error(t, err)
}

// TestExplicitR1CS drives the pipeline through NewR1CS without the
// circuit frontend
func TestExplicitR1CS(t *testing.T) {
	ps, err := NewProofSystem(&Config{FieldModulus: "101", HashFunction: "sha3"})
	require.NoError(t, err)
	field := ps.Field()

	// x * x = out over [1, out, x]
	r1cs, err := ps.NewR1CS(3, 1, 1)
	require.NoError(t, err)

	zero, one := field.Zero(), field.One()
	require.NoError(t, r1cs.SetConstraint(0,
		[]*FieldElement{zero, zero, one},
		[]*FieldElement{zero, zero, one},
		[]*FieldElement{zero, one, zero},
	))

	witness := &Witness{W: []*FieldElement{
		field.One(),
		field.NewElementFromInt64(9),
		field.NewElementFromInt64(98), // the other square root of 9 mod 101
	}}

	proof, err := ps.Prove(r1cs, witness)
	require.NoError(t, err)

	result, err := ps.Verify(r1cs, []*FieldElement{field.NewElementFromInt64(9)}, proof)
	require.NoError(t, err)
	require.True(t, result.Valid, "valid proof rejected: %s", result.Reason)

	if _, err := ps.NewR1CS(0, 1, 0); err == nil {
		t.Error("invalid R1CS shape should fail")
	}
}

// TestPoseidonPipeline runs the full pipeline with the field-friendly
// hasher
func TestPoseidonPipeline(t *testing.T) {
	ps, err := NewProofSystem(&Config{FieldModulus: "1000000007", HashFunction: "poseidon"})
	require.NoError(t, err)

	circ := ps.NewCircuit()
	out := circ.PublicInput()
	x := circ.PrivateInput()
	circ.AssertEqual(circ.Mul(x, x), out)

	r1cs, err := circ.Compile()
	require.NoError(t, err)

	out49 := ps.Field().NewElementFromInt64(49)
	seven := ps.Field().NewElementFromInt64(7)
	witness, err := circ.Assign([]*FieldElement{out49}, []*FieldElement{seven})
	require.NoError(t, err)

	proof, err := ps.Prove(r1cs, witness)
	require.NoError(t, err)

	result, err := ps.Verify(r1cs, []*FieldElement{out49}, proof)
	require.NoError(t, err)
	require.True(t, result.Valid, "valid proof rejected: %s", result.Reason)
}
