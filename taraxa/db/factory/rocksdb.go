//go:build rocksdb

package factory

import "github.com/Taraxa-project/taraxa-runtime-state/taraxa/db/rocksdb"

func init() {
	Registry["rocksdb"] = func() Factory {
		return new(rocksdb.Factory)
	}
}
