// Package circuit provides a small arithmetic-circuit frontend: a flat
// arena of gates over a finite field, compiled into a rank-1 constraint
// system and evaluated into witness vectors.
package circuit

import (
	"fmt"

	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/core"
	"github.com/vybium/vybium-qap-prover/internal/vybium-qap-prover/protocols"
)

// GateOp tags the kind of a gate node
type GateOp int

const (
	// OpPublicInput is a circuit input revealed to the verifier
	OpPublicInput GateOp = iota
	// OpPrivateInput is a secret circuit input
	OpPrivateInput
	// OpConstant is a fixed field element baked into the constraints
	OpConstant
	// OpAdd is an addition gate
	OpAdd
	// OpMul is a multiplication gate
	OpMul
)

// gate is one node of the arena. Gates reference their operands by
// arena index, which always points at an earlier node, so the graph has
// no cycles by construction.
type gate struct {
	op       GateOp
	left     int
	right    int
	constant *core.FieldElement
}

// assertion records an equality a = b between two gate values
type assertion struct {
	a, b int
}

// Circuit is an append-only arena of gates plus equality assertions.
// Build it once, Compile it to an R1CS, then Assign concrete inputs to
// obtain witnesses.
type Circuit struct {
	field      *core.Field
	gates      []gate
	assertions []assertion
	publics    []int // arena indices of public inputs, in declaration order
	privates   []int // arena indices of private inputs, in declaration order

	// set by Compile: witness slot per arena index (-1 for constants)
	slots    []int
	numVars  int
	compiled bool
}

// NewCircuit creates an empty circuit over the given field
func NewCircuit(field *core.Field) *Circuit {
	return &Circuit{field: field}
}

// Field returns the field the circuit is defined over
func (c *Circuit) Field() *core.Field {
	return c.field
}

func (c *Circuit) push(g gate) int {
	c.gates = append(c.gates, g)
	c.compiled = false
	return len(c.gates) - 1
}

// PublicInput declares a public input and returns its gate index
func (c *Circuit) PublicInput() int {
	id := c.push(gate{op: OpPublicInput})
	c.publics = append(c.publics, id)
	return id
}

// PrivateInput declares a secret input and returns its gate index
func (c *Circuit) PrivateInput() int {
	id := c.push(gate{op: OpPrivateInput})
	c.privates = append(c.privates, id)
	return id
}

// Constant declares a fixed value and returns its gate index. Constants
// occupy no witness slot; they fold into constraint coefficients.
func (c *Circuit) Constant(value *core.FieldElement) int {
	return c.push(gate{op: OpConstant, constant: value})
}

// Add returns the gate computing a + b
func (c *Circuit) Add(a, b int) int {
	c.mustExist(a, b)
	return c.push(gate{op: OpAdd, left: a, right: b})
}

// Mul returns the gate computing a * b
func (c *Circuit) Mul(a, b int) int {
	c.mustExist(a, b)
	return c.push(gate{op: OpMul, left: a, right: b})
}

// AssertEqual constrains the values of gates a and b to be equal
func (c *Circuit) AssertEqual(a, b int) {
	c.mustExist(a, b)
	c.assertions = append(c.assertions, assertion{a: a, b: b})
	c.compiled = false
}

func (c *Circuit) mustExist(ids ...int) {
	for _, id := range ids {
		if id < 0 || id >= len(c.gates) {
			panic(fmt.Sprintf("circuit: gate index %d out of range [0, %d)", id, len(c.gates)))
		}
	}
}

// NumPublic returns the number of declared public inputs
func (c *Circuit) NumPublic() int {
	return len(c.publics)
}

// assignSlots lays out the witness: slot 0 is the constant one, then
// public inputs in declaration order, then private inputs, then one
// slot per arithmetic gate.
func (c *Circuit) assignSlots() {
	c.slots = make([]int, len(c.gates))
	for i := range c.slots {
		c.slots[i] = -1
	}

	next := 1
	for _, id := range c.publics {
		c.slots[id] = next
		next++
	}
	for _, id := range c.privates {
		c.slots[id] = next
		next++
	}
	for id, g := range c.gates {
		if g.op == OpAdd || g.op == OpMul {
			c.slots[id] = next
			next++
		}
	}

	c.numVars = next
	c.compiled = true
}

// term writes the linear-combination coefficients selecting the value of
// gate id into row: a constant contributes at slot 0, everything else
// at its own witness slot.
func (c *Circuit) term(row []*core.FieldElement, id int) {
	g := c.gates[id]
	if g.op == OpConstant {
		row[0] = row[0].Add(g.constant)
		return
	}
	one := c.field.One()
	row[c.slots[id]] = row[c.slots[id]].Add(one)
}

func (c *Circuit) emptyRow() []*core.FieldElement {
	row := make([]*core.FieldElement, c.numVars)
	for i := range row {
		row[i] = c.field.Zero()
	}
	return row
}

// Compile lowers the circuit to an R1CS: one rank-1 constraint per
// arithmetic gate (additions encoded as (a + b) * 1 = out) plus one per
// equality assertion. A circuit with no constraints cannot be compiled.
func (c *Circuit) Compile() (*protocols.R1CS, error) {
	c.assignSlots()

	numCons := 0
	for _, g := range c.gates {
		if g.op == OpAdd || g.op == OpMul {
			numCons++
		}
	}
	numCons += len(c.assertions)
	if numCons == 0 {
		return nil, fmt.Errorf("circuit has no gates or assertions to constrain")
	}

	r1cs, err := protocols.NewR1CS(c.field, c.numVars, numCons, len(c.publics))
	if err != nil {
		return nil, err
	}

	constraint := 0
	setRow := func(aRow, bRow, cRow []*core.FieldElement) error {
		if err := r1cs.SetConstraint(constraint, aRow, bRow, cRow); err != nil {
			return err
		}
		constraint++
		return nil
	}

	for id, g := range c.gates {
		switch g.op {
		case OpMul:
			aRow, bRow, cRow := c.emptyRow(), c.emptyRow(), c.emptyRow()
			c.term(aRow, g.left)
			c.term(bRow, g.right)
			cRow[c.slots[id]] = c.field.One()
			if err := setRow(aRow, bRow, cRow); err != nil {
				return nil, err
			}
		case OpAdd:
			// (left + right) * 1 = out
			aRow, bRow, cRow := c.emptyRow(), c.emptyRow(), c.emptyRow()
			c.term(aRow, g.left)
			c.term(aRow, g.right)
			bRow[0] = c.field.One()
			cRow[c.slots[id]] = c.field.One()
			if err := setRow(aRow, bRow, cRow); err != nil {
				return nil, err
			}
		}
	}

	for _, assert := range c.assertions {
		// a * 1 = b
		aRow, bRow, cRow := c.emptyRow(), c.emptyRow(), c.emptyRow()
		c.term(aRow, assert.a)
		bRow[0] = c.field.One()
		c.term(cRow, assert.b)
		if err := setRow(aRow, bRow, cRow); err != nil {
			return nil, err
		}
	}

	return r1cs, nil
}

// Assign evaluates the circuit on concrete inputs and returns the full
// witness vector, constant-one slot included. The circuit must have
// been compiled first so the witness layout exists.
func (c *Circuit) Assign(public, private []*core.FieldElement) (*protocols.Witness, error) {
	if !c.compiled {
		if _, err := c.Compile(); err != nil {
			return nil, err
		}
	}
	if len(public) != len(c.publics) {
		return nil, fmt.Errorf("expected %d public inputs, got %d", len(c.publics), len(public))
	}
	if len(private) != len(c.privates) {
		return nil, fmt.Errorf("expected %d private inputs, got %d", len(c.privates), len(private))
	}

	values := make([]*core.FieldElement, len(c.gates))
	for i, id := range c.publics {
		values[id] = public[i]
	}
	for i, id := range c.privates {
		values[id] = private[i]
	}

	w := make([]*core.FieldElement, c.numVars)
	w[0] = c.field.One()
	for i, id := range c.publics {
		w[c.slots[id]] = public[i]
	}
	for i, id := range c.privates {
		w[c.slots[id]] = private[i]
	}

	// Gates only reference earlier nodes, so one forward pass suffices
	for id, g := range c.gates {
		switch g.op {
		case OpConstant:
			values[id] = g.constant
		case OpAdd:
			values[id] = values[g.left].Add(values[g.right])
			w[c.slots[id]] = values[id]
		case OpMul:
			values[id] = values[g.left].Mul(values[g.right])
			w[c.slots[id]] = values[id]
		}
	}

	return protocols.NewWitness(w), nil
}
