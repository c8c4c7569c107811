package core

import (
	"bytes"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// paddingLeaf is the fixed sentinel used to pad the leaf layer up to the
// next power of two. It is public protocol configuration, not a secret.
var paddingLeaf = make([]byte, 32)

// MerkleTree is a complete binary hash tree over a sequence of leaves,
// used as a binding commitment. Leaves are hashed, padded with a fixed
// sentinel to the next power of two, and folded pairwise to a root.
type MerkleTree struct {
	hasher  Hasher
	root    []byte
	numData int // number of real (unpadded) leaves
	levels  [][][]byte
}

// InclusionProof ties one leaf to a Merkle root: the ordered sibling
// hashes from the leaf level up, plus the leaf index whose parity at
// each level fixes left/right ordering.
type InclusionProof struct {
	Index    int
	Siblings [][]byte
}

// NewMerkleTree builds a Merkle tree over the given data items with the
// given hasher. An empty data sequence is invalid.
func NewMerkleTree(data [][]byte, hasher Hasher) (*MerkleTree, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot create Merkle tree with empty data")
	}
	if hasher == nil {
		return nil, fmt.Errorf("cannot create Merkle tree without a hasher")
	}

	padded := nextPowerOfTwo(len(data))
	leaves := make([][]byte, padded)

	// Leaf hashing is embarrassingly parallel; fold levels stay serial
	// since each is cheap and depends on the previous one.
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range leaves {
		i := i
		g.Go(func() error {
			if i < len(data) {
				leaves[i] = hasher.Sum(data[i])
			} else {
				leaves[i] = hasher.Sum(paddingLeaf)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	levels := [][][]byte{leaves}
	current := leaves
	for len(current) > 1 {
		next := make([][]byte, len(current)/2)
		for i := 0; i < len(current); i += 2 {
			combined := append(append([]byte{}, current[i]...), current[i+1]...)
			next[i/2] = hasher.Sum(combined)
		}
		levels = append(levels, next)
		current = next
	}

	return &MerkleTree{
		hasher:  hasher,
		root:    current[0],
		numData: len(data),
		levels:  levels,
	}, nil
}

// Root returns the Merkle root
func (mt *MerkleTree) Root() []byte {
	return append([]byte(nil), mt.root...)
}

// NumLeaves returns the number of real (unpadded) leaves
func (mt *MerkleTree) NumLeaves() int {
	return mt.numData
}

// Depth returns the number of levels between a leaf and the root
func (mt *MerkleTree) Depth() int {
	return len(mt.levels) - 1
}

// Open returns the inclusion proof for the leaf at the given index.
// Only real leaves can be opened, not padding.
func (mt *MerkleTree) Open(index int) (*InclusionProof, error) {
	if index < 0 || index >= mt.numData {
		return nil, fmt.Errorf("leaf index %d out of range [0, %d)", index, mt.numData)
	}

	siblings := make([][]byte, 0, mt.Depth())
	current := index
	for level := 0; level < len(mt.levels)-1; level++ {
		sibling := current ^ 1
		siblings = append(siblings, append([]byte(nil), mt.levels[level][sibling]...))
		current /= 2
	}

	return &InclusionProof{Index: index, Siblings: siblings}, nil
}

// VerifyProof recomputes the path from leaf to root and compares against
// the expected root. A mismatch is a normal outcome and yields false,
// never an error.
func VerifyProof(root, leaf []byte, proof *InclusionProof, hasher Hasher) bool {
	if proof == nil || proof.Index < 0 || hasher == nil {
		return false
	}

	hash := hasher.Sum(leaf)
	current := proof.Index
	for _, sibling := range proof.Siblings {
		var combined []byte
		if current%2 == 0 {
			combined = append(append([]byte{}, hash...), sibling...)
		} else {
			combined = append(append([]byte{}, sibling...), hash...)
		}
		hash = hasher.Sum(combined)
		current /= 2
	}

	return bytes.Equal(hash, root)
}

// nextPowerOfTwo returns the smallest power of 2 >= n
func nextPowerOfTwo(n int) int {
	power := 1
	for power < n {
		power <<= 1
	}
	return power
}

// MerkleRoot computes just the root of the given data (convenience)
func MerkleRoot(data [][]byte, hasher Hasher) ([]byte, error) {
	tree, err := NewMerkleTree(data, hasher)
	if err != nil {
		return nil, err
	}
	return tree.Root(), nil
}
