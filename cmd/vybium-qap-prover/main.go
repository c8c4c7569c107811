// Command vybium-qap-prover runs the example circuit x*x = out through
// the full pipeline: compile, assign, prove, serialize, verify.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/logger"
	vybiumqapprover "github.com/vybium/vybium-qap-prover/pkg/vybium-qap-prover"
)

func main() {
	modulus := flag.String("modulus", "1000000007", "prime field modulus (base 10)")
	hashFunc := flag.String("hash", "sha3", "hash function: sha256, sha3, poseidon, rescue")
	x := flag.Int64("x", 3, "secret input x")
	out := flag.Int64("out", 9, "public output, the circuit enforces x*x = out")
	proofFile := flag.String("proof", "", "optional path to write the serialized proof to")
	flag.Parse()

	log := logger.Logger()

	ps, err := vybiumqapprover.NewProofSystem(&vybiumqapprover.Config{
		FieldModulus: *modulus,
		HashFunction: *hashFunc,
	})
	if err != nil {
		fatal("failed to create proof system: %v", err)
	}

	circ := ps.NewCircuit()
	outGate := circ.PublicInput()
	xGate := circ.PrivateInput()
	circ.AssertEqual(circ.Mul(xGate, xGate), outGate)

	r1cs, err := circ.Compile()
	if err != nil {
		fatal("failed to compile circuit: %v", err)
	}
	log.Info().
		Int("constraints", r1cs.NumConstraints()).
		Int("variables", r1cs.NumVars()).
		Msg("circuit compiled")

	outVal := ps.Field().NewElementFromInt64(*out)
	xVal := ps.Field().NewElementFromInt64(*x)
	witness, err := circ.Assign(
		[]*vybiumqapprover.FieldElement{outVal},
		[]*vybiumqapprover.FieldElement{xVal},
	)
	if err != nil {
		fatal("failed to assign witness: %v", err)
	}

	proof, err := ps.Prove(r1cs, witness)
	if err != nil {
		fatal("proof generation failed: %v", err)
	}
	log.Info().Msg("proof generated")

	// Round-trip through the wire format, the way a real verifier would
	// receive it
	var buf bytes.Buffer
	if err := ps.WriteProof(&buf, proof); err != nil {
		fatal("failed to serialize proof: %v", err)
	}
	if *proofFile != "" {
		if err := os.WriteFile(*proofFile, buf.Bytes(), 0o644); err != nil {
			fatal("failed to write proof file: %v", err)
		}
		log.Info().Str("path", *proofFile).Int("bytes", buf.Len()).Msg("proof written")
	}

	received, err := ps.ReadProof(bytes.NewReader(buf.Bytes()))
	if err != nil {
		fatal("failed to deserialize proof: %v", err)
	}

	result, err := ps.Verify(r1cs, []*vybiumqapprover.FieldElement{outVal}, received)
	if err != nil {
		fatal("verification errored: %v", err)
	}

	if result.Valid {
		log.Info().Msg("proof accepted")
		fmt.Println("valid")
	} else {
		log.Warn().Str("reason", result.Reason).Msg("proof rejected")
		fmt.Println("invalid:", result.Reason)
		os.Exit(1)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
