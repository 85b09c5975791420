package trie

import "github.com/ethereum/go-ethereum/common"

type ReadOnlyDB interface {
	// GetNode returns nil for an unknown hash.
	GetNode(node_hash *common.Hash) ([]byte, error)
}

type DB interface {
	ReadOnlyDB
	PutNode(node_hash *common.Hash, enc []byte) error
}

const KeyBits = common.HashLength * 8

var EmptyRoot = common.Hash{}
