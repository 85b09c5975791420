package leveldb

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db"
)

type Database struct {
	db *leveldb.DB
}

func (self *Database) Get(key []byte) ([]byte, error) {
	ret, err := self.db.Get(key, nil)
	if err == errors.ErrNotFound {
		return nil, nil
	}
	return ret, err
}

func (self *Database) NewBatch() db.Batch {
	return &batch{db: self.db, b: new(leveldb.Batch)}
}

func (self *Database) Close() error { return self.db.Close() }

type batch struct {
	db   *leveldb.DB
	b    *leveldb.Batch
	size int
}

func (self *batch) Put(key, value []byte) error {
	self.b.Put(key, value)
	self.size += len(value)
	return nil
}

func (self *batch) Delete(key []byte) error {
	self.b.Delete(key)
	self.size++
	return nil
}

func (self *batch) ValueSize() int { return self.size }

func (self *batch) Write() error {
	return self.db.Write(self.b, &opt.WriteOptions{Sync: true})
}

func (self *batch) Reset() {
	self.b.Reset()
	self.size = 0
}

// Factory opens a database at File, or an in-memory one if File is empty.
type Factory struct {
	File    string `yaml:"file"`
	Cache   int    `yaml:"cache"`
	Handles int    `yaml:"handles"`
}

func (self *Factory) NewInstance() (db.Database, error) {
	o := &opt.Options{
		BlockCacheCapacity:     self.Cache * opt.MiB,
		OpenFilesCacheCapacity: self.Handles,
	}
	var ret *leveldb.DB
	var err error
	if self.File == "" {
		ret, err = leveldb.Open(storage.NewMemStorage(), o)
	} else {
		ret, err = leveldb.OpenFile(self.File, o)
		if _, corrupted := err.(*errors.ErrCorrupted); corrupted {
			ret, err = leveldb.RecoverFile(self.File, nil)
		}
	}
	if err != nil {
		return nil, err
	}
	return &Database{ret}, nil
}

func (self *Factory) SetPath(path string) { self.File = path }
