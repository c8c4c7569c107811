// Package vybiumqapprover provides a QAP-based zero-knowledge proof
// system: it proves that a secret witness satisfies a public rank-1
// constraint system without revealing the witness.
//
// # Pipeline
//
// A computation is described as an arithmetic circuit (or directly as
// R1CS constraint matrices). The R1CS is transformed into a quadratic
// arithmetic program by Lagrange interpolation; satisfiability then
// becomes exact divisibility of the combined polynomial A(x)B(x)-C(x)
// by the target polynomial Z(x). The prover commits to the witness with
// a Merkle tree, derives a challenge from the commitment root and the
// public inputs (Fiat-Shamir), and sends the polynomial evaluations at
// the challenge point together with inclusion proofs for the public
// witness positions. The verifier re-derives the challenge and checks
// the single scalar identity A·B - C = h·Z plus the openings.
//
// # Quick Start
//
// Proving that a secret x satisfies x*x = 9:
//
//	ps, err := vybiumqapprover.NewProofSystem(vybiumqapprover.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	circ := ps.NewCircuit()
//	out := circ.PublicInput()
//	x := circ.PrivateInput()
//	circ.AssertEqual(circ.Mul(x, x), out)
//
//	r1cs, err := circ.Compile()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	nine := ps.Field().NewElementFromInt64(9)
//	three := ps.Field().NewElementFromInt64(3)
//	witness, err := circ.Assign([]*vybiumqapprover.FieldElement{nine}, []*vybiumqapprover.FieldElement{three})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	proof, err := ps.Prove(r1cs, witness)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := ps.Verify(r1cs, []*vybiumqapprover.FieldElement{nine}, proof)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if result.Valid {
//		fmt.Println("proof accepted")
//	}
//
// # Architecture
//
// The repository uses a hybrid public/private architecture:
//
//   - pkg/vybium-qap-prover/: public API (this package)
//   - internal/vybium-qap-prover/: private implementation (not importable)
//
// Implementation details in internal/ can be refactored without
// breaking the public API.
//
// # Security model
//
// The Merkle commitment binds the prover to the witness before the
// challenge exists; soundness of the evaluation check is probabilistic
// in the field size (deg(P)/|field| per Schwartz-Zippel). The hash
// function and the prime modulus are configuration parameters; the
// default hash is SHA3-256 and field-friendly Poseidon/Rescue sponges
// are available. This implementation favors clarity over side-channel
// hardening and is not meant to guard high-value secrets.
package vybiumqapprover
