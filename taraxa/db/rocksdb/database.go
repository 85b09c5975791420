//go:build rocksdb

package rocksdb

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/tecbot/gorocksdb"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db"
)

type Database struct {
	db        *gorocksdb.DB
	readOpts  *gorocksdb.ReadOptions
	writeOpts *gorocksdb.WriteOptions
}

func (self *Database) Get(key []byte) ([]byte, error) {
	slice, err := self.db.Get(self.readOpts, key)
	if err != nil {
		return nil, err
	}
	defer slice.Free()
	if !slice.Exists() {
		return nil, nil
	}
	return common.CopyBytes(slice.Data()), nil
}

func (self *Database) NewBatch() db.Batch {
	return &batch{db: self, batch: gorocksdb.NewWriteBatch()}
}

func (self *Database) Close() error {
	self.db.Close()
	self.readOpts.Destroy()
	self.writeOpts.Destroy()
	return nil
}

type batch struct {
	db    *Database
	batch *gorocksdb.WriteBatch
	size  int
}

func (self *batch) Put(key, value []byte) error {
	self.batch.Put(key, value)
	self.size += len(value)
	return nil
}

func (self *batch) Delete(key []byte) error {
	self.batch.Delete(key)
	self.size++
	return nil
}

func (self *batch) ValueSize() int { return self.size }

func (self *batch) Write() error {
	return self.db.db.Write(self.db.writeOpts, self.batch)
}

func (self *batch) Reset() {
	self.batch.Clear()
	self.size = 0
}
