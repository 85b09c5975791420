package trie

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/keccak256"
)

// Node layout: one tag byte followed by two hashes.
//   leaf:   tag_leaf   | key        | value hash
//   branch: tag_branch | left hash  | right hash
// An empty subtree is the zero hash. A node is stored under keccak256 of
// its encoding.
const (
	tag_leaf   byte = 0
	tag_branch byte = 1
	enc_size        = 1 + 2*common.HashLength
)

var ErrMalformedNode = util.ErrorString("malformed trie node")

func enc_leaf(key, val *common.Hash) []byte {
	ret := make([]byte, 0, enc_size)
	ret = append(ret, tag_leaf)
	ret = append(ret, key[:]...)
	return append(ret, val[:]...)
}

func enc_branch(left, right *common.Hash) []byte {
	ret := make([]byte, 0, enc_size)
	ret = append(ret, tag_branch)
	ret = append(ret, left[:]...)
	return append(ret, right[:]...)
}

func hash_leaf(key, val *common.Hash) common.Hash {
	return keccak256.Hash(enc_leaf(key, val))
}

func hash_branch(left, right *common.Hash) common.Hash {
	return keccak256.Hash(enc_branch(left, right))
}

func dec_node(hash *common.Hash, enc []byte) (node, error) {
	if len(enc) != enc_size {
		return nil, ErrMalformedNode
	}
	switch enc[0] {
	case tag_leaf:
		ret := &leaf_node{hash: hash}
		copy(ret.key[:], enc[1:])
		copy(ret.val[:], enc[1+common.HashLength:])
		return ret, nil
	case tag_branch:
		ret := &branch_node{hash: hash}
		for i := 0; i < 2; i++ {
			var child common.Hash
			copy(child[:], enc[1+i*common.HashLength:])
			if child != EmptyRoot {
				ret.children[i] = (*node_hash)(&child)
			}
		}
		return ret, nil
	}
	return nil, ErrMalformedNode
}

func child_hash(n node) (ret common.Hash) {
	if n != nil {
		ret = *n.get_hash()
	}
	return
}
