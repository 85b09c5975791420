package trie

import "github.com/ethereum/go-ethereum/common"

type node interface {
	get_hash() *common.Hash
}

type branch_node struct {
	children [2]node
	hash     *common.Hash
}

func (self *branch_node) get_hash() *common.Hash { return self.hash }

type leaf_node struct {
	key  common.Hash
	val  common.Hash
	hash *common.Hash
}

func (self *leaf_node) get_hash() *common.Hash { return self.hash }

// a child that has not been loaded from the db yet
type node_hash common.Hash

func (self *node_hash) common_hash() *common.Hash { return (*common.Hash)(self) }
func (self *node_hash) get_hash() *common.Hash    { return self.common_hash() }

func bit(key *common.Hash, depth int) byte {
	return (key[depth/8] >> (7 - uint(depth%8))) & 1
}
