package utils

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/core"
)

func newTestChannel(t *testing.T) *Channel {
	t.Helper()
	hasher, err := core.NewHasher("sha3", nil)
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}
	return NewChannel(hasher)
}

// TestChannelDeterminism verifies two channels fed identical messages
// derive identical challenges
func TestChannelDeterminism(t *testing.T) {
	a := newTestChannel(t)
	b := newTestChannel(t)

	for _, msg := range [][]byte{[]byte("root"), []byte("pub-0"), []byte("pub-1")} {
		a.Send(msg)
		b.Send(msg)
	}

	if !bytes.Equal(a.State(), b.State()) {
		t.Fatal("identical messages produced different states")
	}

	min, max := big.NewInt(0), big.NewInt(1_000_000)
	for i := 0; i < 5; i++ {
		ca := a.ReceiveRandomInt(min, max)
		cb := b.ReceiveRandomInt(min, max)
		if ca.Cmp(cb) != 0 {
			t.Fatalf("challenge %d diverged: %s vs %s", i, ca, cb)
		}
	}
}

// TestChannelSensitivity verifies the state depends on every message
func TestChannelSensitivity(t *testing.T) {
	a := newTestChannel(t)
	b := newTestChannel(t)

	a.Send([]byte("root"))
	b.Send([]byte("roof"))

	if bytes.Equal(a.State(), b.State()) {
		t.Error("different messages produced the same state")
	}
}

// TestReceiveRandomInt tests range handling and state ratcheting
func TestReceiveRandomInt(t *testing.T) {
	channel := newTestChannel(t)
	channel.Send([]byte("seed"))

	min, max := big.NewInt(10), big.NewInt(20)
	value := channel.ReceiveRandomInt(min, max)
	if value.Cmp(min) < 0 || value.Cmp(max) > 0 {
		t.Errorf("challenge %s outside [%s, %s]", value, min, max)
	}

	// The state ratchets, so a second draw differs from the first with
	// overwhelming probability over a large range
	wide := big.NewInt(1 << 40)
	first := channel.ReceiveRandomInt(big.NewInt(0), wide)
	second := channel.ReceiveRandomInt(big.NewInt(0), wide)
	if first.Cmp(second) == 0 {
		t.Error("consecutive challenges are identical, state did not ratchet")
	}

	if got := channel.ReceiveRandomInt(big.NewInt(5), big.NewInt(4)); got != nil {
		t.Errorf("inverted range returned %s, expected nil", got)
	}
}

// TestReceiveRandomFieldElement tests challenge elements stay in the field
func TestReceiveRandomFieldElement(t *testing.T) {
	field, err := core.NewField(big.NewInt(101))
	if err != nil {
		t.Fatalf("NewField failed: %v", err)
	}

	channel := newTestChannel(t)
	channel.Send([]byte("commitment"))

	for i := 0; i < 10; i++ {
		elem := channel.ReceiveRandomFieldElement(field)
		if elem.Big().Cmp(field.Modulus()) >= 0 || elem.Big().Sign() < 0 {
			t.Fatalf("challenge element %s outside the field", elem)
		}
	}
}

// TestChannelTranscript verifies the transcript logs sends and draws in
// order
func TestChannelTranscript(t *testing.T) {
	channel := newTestChannel(t)

	channel.Send([]byte{0xab})
	channel.ReceiveRandomInt(big.NewInt(0), big.NewInt(100))

	transcript := channel.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("transcript has %d entries, expected 2", len(transcript))
	}
	if transcript[0] != "send:ab" {
		t.Errorf("first entry = %q", transcript[0])
	}
	if len(channel.String()) == 0 {
		t.Error("String() is empty")
	}
}
