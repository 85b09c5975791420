package trie

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util"
)

var ErrMissingNode = util.ErrorString("trie node not found")

type Reader struct{ DB ReadOnlyDB }

func root_node(root_hash *common.Hash) node {
	if root_hash == nil || *root_hash == EmptyRoot {
		return nil
	}
	h := *root_hash
	return (*node_hash)(&h)
}

func (self Reader) resolve(n node) (node, error) {
	h, is_hash := n.(*node_hash)
	if !is_hash {
		return n, nil
	}
	enc, err := self.DB.GetNode(h.common_hash())
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, errors.Wrapf(ErrMissingNode, "%x", h[:])
	}
	return dec_node(h.common_hash(), enc)
}

// Get returns the value hash stored under key, nil if the key is absent.
func (self Reader) Get(root_hash, key *common.Hash) (*common.Hash, error) {
	n := root_node(root_hash)
	for depth := 0; n != nil; depth++ {
		var err error
		if n, err = self.resolve(n); err != nil {
			return nil, err
		}
		switch cur := n.(type) {
		case *leaf_node:
			if cur.key != *key {
				return nil, nil
			}
			ret := cur.val
			return &ret, nil
		case *branch_node:
			if depth >= KeyBits {
				return nil, ErrMalformedNode
			}
			n = cur.children[bit(key, depth)]
		default:
			return nil, ErrMalformedNode
		}
	}
	return nil, nil
}

type KVCallback = func(key, val *common.Hash) error

// ForEach visits every leaf in key order.
func (self Reader) ForEach(root_hash *common.Hash, cb KVCallback) error {
	if n := root_node(root_hash); n != nil {
		return self.for_each(n, cb)
	}
	return nil
}

func (self Reader) for_each(n node, cb KVCallback) error {
	n, err := self.resolve(n)
	if err != nil {
		return err
	}
	switch n := n.(type) {
	case *leaf_node:
		return cb(&n.key, &n.val)
	case *branch_node:
		for _, c := range n.children {
			if c == nil {
				continue
			}
			if err := self.for_each(c, cb); err != nil {
				return err
			}
		}
		return nil
	}
	return ErrMalformedNode
}

// Prove collects the sibling hashes on the path to key, top-down.
func (self Reader) Prove(root_hash, key *common.Hash) (ret Proof, err error) {
	n := root_node(root_hash)
	for depth := 0; n != nil; depth++ {
		if n, err = self.resolve(n); err != nil {
			return
		}
		switch cur := n.(type) {
		case *leaf_node:
			ret.Leaf = &ProofLeaf{Key: cur.key, ValueHash: cur.val}
			return
		case *branch_node:
			if depth >= KeyBits {
				err = ErrMalformedNode
				return
			}
			b := bit(key, depth)
			ret.Siblings = append(ret.Siblings, child_hash(cur.children[1-b]))
			n = cur.children[b]
		default:
			err = ErrMalformedNode
			return
		}
	}
	return
}
