package trie

import (
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/common"
)

var dump_cfg = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}

type dump_entry struct {
	Key   common.Hash
	Value common.Hash
}

// Dump writes every key/value hash pair under root to w.
func (self Reader) Dump(root_hash *common.Hash, w io.Writer) error {
	var entries []dump_entry
	err := self.ForEach(root_hash, func(key, val *common.Hash) error {
		entries = append(entries, dump_entry{*key, *val})
		return nil
	})
	if err != nil {
		return err
	}
	dump_cfg.Fdump(w, entries)
	return nil
}
