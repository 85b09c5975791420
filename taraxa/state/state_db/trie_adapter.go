package state_db

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db"
)

type node_reader struct{ *DB }

func (self node_reader) GetNode(node_hash *common.Hash) ([]byte, error) {
	if enc, ok := self.node_cache.Get(*node_hash); ok {
		return enc.([]byte), nil
	}
	enc, err := self.backend.Get(hash_key(COL_node, node_hash))
	if err != nil {
		return nil, errors.Wrap(err, "read trie node")
	}
	if enc != nil {
		self.node_cache.Add(*node_hash, enc)
	}
	return enc, nil
}

type pending_node struct {
	hash common.Hash
	enc  []byte
}

// node_sink stages new nodes in the commit batch. They reach the cache
// only after the batch is written.
type node_sink struct {
	node_reader
	batch db.Batch
	nodes []pending_node
}

func (self *node_sink) PutNode(node_hash *common.Hash, enc []byte) error {
	self.nodes = append(self.nodes, pending_node{*node_hash, enc})
	return self.batch.Put(hash_key(COL_node, node_hash), enc)
}
