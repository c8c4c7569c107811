package utils

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/core"
)

// Channel is a Fiat-Shamir transcript channel. Every message the prover
// would send to an interactive verifier is absorbed into a running hash
// state; verifier challenges are read back out of that state. Prover
// and verifier drive identical channels over identical messages, so the
// derived challenges cannot diverge and need no live interaction.
type Channel struct {
	hasher     core.Hasher
	state      []byte
	transcript []string
}

// NewChannel creates a new Fiat-Shamir channel over the given hasher
func NewChannel(hasher core.Hasher) *Channel {
	return &Channel{
		hasher:     hasher,
		state:      []byte{0},
		transcript: make([]string, 0, 16),
	}
}

// Send absorbs prover data into the channel state
func (c *Channel) Send(data []byte) {
	c.transcript = append(c.transcript, fmt.Sprintf("send:%s", hex.EncodeToString(data)))
	c.state = c.hasher.Sum(append(append([]byte{}, c.state...), data...))
}

// ReceiveRandomInt derives a challenge integer in [min, max] from the
// current state. Returns nil if min > max.
func (c *Channel) ReceiveRandomInt(min, max *big.Int) *big.Int {
	if min.Cmp(max) > 0 {
		return nil
	}

	stateAsInt := new(big.Int).SetBytes(c.state)

	rangeSize := new(big.Int).Sub(max, min)
	rangeSize.Add(rangeSize, big.NewInt(1))

	random := new(big.Int).Mod(stateAsInt, rangeSize)
	random.Add(random, min)

	// Ratchet the state so successive challenges are independent
	c.transcript = append(c.transcript, fmt.Sprintf("receiveRandInt:%s", random.String()))
	c.state = c.hasher.Sum(c.state)

	return random
}

// ReceiveRandomFieldElement derives a challenge element of the given field
func (c *Channel) ReceiveRandomFieldElement(field *core.Field) *core.FieldElement {
	max := new(big.Int).Sub(field.Modulus(), big.NewInt(1))
	random := c.ReceiveRandomInt(big.NewInt(0), max)
	return field.NewElement(random)
}

// State returns a copy of the current channel state
func (c *Channel) State() []byte {
	return append([]byte(nil), c.state...)
}

// Transcript returns the ordered log of absorbed and derived values
func (c *Channel) Transcript() []string {
	return append([]string(nil), c.transcript...)
}

// String returns a string representation of the transcript
func (c *Channel) String() string {
	return strings.Join(c.transcript, " ")
}
