package trie

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util"
)

var ErrInvalidProof = util.ErrorString("invalid trie proof")

type ProofLeaf struct {
	Key       common.Hash
	ValueHash common.Hash
}

// Proof is a path from the root to where a key lives or would live.
// Siblings are ordered from the root down. Leaf is the leaf found at the
// end of the path, which belongs to a different key in a non-membership
// proof, or nil when the path ends in an empty subtree.
type Proof struct {
	Siblings []common.Hash
	Leaf     *ProofLeaf
}

// Verify checks the proof against root. On success it returns the value
// hash of key, or exists=false if the proof shows key is absent.
func (self *Proof) Verify(root, key *common.Hash) (val common.Hash, exists bool, err error) {
	depth := len(self.Siblings)
	if depth > KeyBits {
		return val, false, ErrInvalidProof
	}
	var cur common.Hash
	if self.Leaf != nil {
		if self.Leaf.Key == *key {
			val, exists = self.Leaf.ValueHash, true
		} else if !same_prefix(&self.Leaf.Key, key, depth) {
			return common.Hash{}, false, ErrInvalidProof
		}
		cur = hash_leaf(&self.Leaf.Key, &self.Leaf.ValueHash)
	}
	for i := depth - 1; i >= 0; i-- {
		sib := &self.Siblings[i]
		if cur == EmptyRoot && *sib == EmptyRoot {
			// a branch with no children is never stored
			return common.Hash{}, false, ErrInvalidProof
		}
		if bit(key, i) == 0 {
			cur = hash_branch(&cur, sib)
		} else {
			cur = hash_branch(sib, &cur)
		}
	}
	if cur != *root {
		return common.Hash{}, false, ErrInvalidProof
	}
	return
}

func same_prefix(a, b *common.Hash, bits int) bool {
	for i := 0; i < bits; i++ {
		if bit(a, i) != bit(b, i) {
			return false
		}
	}
	return true
}
