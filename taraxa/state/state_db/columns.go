package state_db

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/bin"
)

type Column = byte

// Every backend key is prefixed with its column.
const (
	// node hash -> node encoding
	COL_node Column = iota
	// value hash -> value bytes
	COL_value
	// slot key -> value bytes of the last commit
	COL_latest
	COL_meta
)

var (
	meta_descriptor = []byte("descriptor")
	meta_root       = []byte("root/")
)

func db_key(col Column, k []byte) []byte {
	return bin.Concat([]byte{col}, k...)
}

func hash_key(col Column, h *common.Hash) []byte {
	return db_key(col, h[:])
}

func root_key(height uint64) []byte {
	return db_key(COL_meta, bin.Concat(meta_root, bin.ENC_b_endian_64(height)...))
}
