package trie

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/keccak256"
)

// Writer accumulates modifications on top of a committed root. Nodes that
// were not touched stay as hashes and are loaded lazily.
type Writer struct {
	reader Reader
	root   node
}

func (self *Writer) Init(db ReadOnlyDB, root_hash *common.Hash) *Writer {
	self.reader = Reader{db}
	self.root = root_node(root_hash)
	return self
}

func (self *Writer) Put(key, val *common.Hash) (err error) {
	self.root, err = self.insert(self.root, 0, &leaf_node{key: *key, val: *val})
	return
}

func (self *Writer) Delete(key *common.Hash) error {
	root, _, err := self.delete(self.root, 0, key)
	if err == nil {
		self.root = root
	}
	return err
}

func (self *Writer) insert(n node, depth int, l *leaf_node) (node, error) {
	if n == nil {
		return l, nil
	}
	n, err := self.reader.resolve(n)
	if err != nil {
		return nil, err
	}
	switch cur := n.(type) {
	case *leaf_node:
		if cur.key == l.key {
			if cur.val == l.val {
				return cur, nil
			}
			return l, nil
		}
		return split(cur, l, depth), nil
	case *branch_node:
		if depth >= KeyBits {
			return nil, ErrMalformedNode
		}
		b := bit(&l.key, depth)
		child, err := self.insert(cur.children[b], depth+1, l)
		if err != nil {
			return nil, err
		}
		ret := &branch_node{children: cur.children}
		ret.children[b] = child
		return ret, nil
	}
	return nil, ErrMalformedNode
}

func split(a, b *leaf_node, depth int) node {
	ret := new(branch_node)
	bit_a, bit_b := bit(&a.key, depth), bit(&b.key, depth)
	if bit_a != bit_b {
		ret.children[bit_a], ret.children[bit_b] = a, b
	} else {
		ret.children[bit_a] = split(a, b, depth+1)
	}
	return ret
}

func (self *Writer) delete(n node, depth int, key *common.Hash) (ret node, changed bool, err error) {
	if n == nil {
		return nil, false, nil
	}
	if n, err = self.reader.resolve(n); err != nil {
		return
	}
	switch cur := n.(type) {
	case *leaf_node:
		if cur.key == *key {
			return nil, true, nil
		}
		return cur, false, nil
	case *branch_node:
		if depth >= KeyBits {
			return nil, false, ErrMalformedNode
		}
		b := bit(key, depth)
		child, child_changed, err := self.delete(cur.children[b], depth+1, key)
		if err != nil || !child_changed {
			return cur, false, err
		}
		children := cur.children
		children[b] = child
		var only node
		switch {
		case children[0] == nil && children[1] == nil:
			return nil, true, nil
		case children[0] == nil:
			only = children[1]
		case children[1] == nil:
			only = children[0]
		}
		if only != nil {
			// a lone leaf moves up to keep the tree compact
			if only, err = self.reader.resolve(only); err != nil {
				return nil, false, err
			}
			if l, is_leaf := only.(*leaf_node); is_leaf {
				return l, true, nil
			}
		}
		return &branch_node{children: children}, true, nil
	}
	return nil, false, ErrMalformedNode
}

// Commit stores every new node in db and returns the root hash.
func (self *Writer) Commit(db DB) (common.Hash, error) {
	if self.root == nil {
		return EmptyRoot, nil
	}
	h, err := commit(self.root, db)
	if err != nil {
		return EmptyRoot, err
	}
	return *h, nil
}

func commit(n node, db DB) (*common.Hash, error) {
	if h := n.get_hash(); h != nil {
		return h, nil
	}
	var enc []byte
	switch cur := n.(type) {
	case *leaf_node:
		enc = enc_leaf(&cur.key, &cur.val)
	case *branch_node:
		var hashes [2]common.Hash
		for i, c := range cur.children {
			if c == nil {
				continue
			}
			h, err := commit(c, db)
			if err != nil {
				return nil, err
			}
			hashes[i] = *h
		}
		enc = enc_branch(&hashes[0], &hashes[1])
	default:
		return nil, ErrMalformedNode
	}
	h := keccak256.Hash(enc)
	if err := db.PutNode(&h, enc); err != nil {
		return nil, err
	}
	switch cur := n.(type) {
	case *leaf_node:
		cur.hash = &h
	case *branch_node:
		cur.hash = &h
	}
	return &h, nil
}
