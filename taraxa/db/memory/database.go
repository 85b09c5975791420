package memory

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util"
)

// Database keeps everything in a map. Nothing is persisted.
type Database struct {
	kv map[string][]byte
	mu sync.RWMutex
}

func New(capacity int) *Database {
	return &Database{kv: make(map[string][]byte, capacity)}
}

func (self *Database) Get(key []byte) ([]byte, error) {
	defer util.RLockRUnlock(&self.mu)()
	if v, ok := self.kv[string(key)]; ok {
		return common.CopyBytes(v), nil
	}
	return nil, nil
}

func (self *Database) Len() int {
	defer util.RLockRUnlock(&self.mu)()
	return len(self.kv)
}

func (self *Database) NewBatch() db.Batch {
	return &batch{db: self}
}

func (self *Database) Close() error { return nil }

type batch_op struct {
	key, val []byte
	del      bool
}

type batch struct {
	db   *Database
	ops  []batch_op
	size int
}

func (self *batch) Put(key, value []byte) error {
	self.ops = append(self.ops, batch_op{common.CopyBytes(key), common.CopyBytes(value), false})
	self.size += len(value)
	return nil
}

func (self *batch) Delete(key []byte) error {
	self.ops = append(self.ops, batch_op{common.CopyBytes(key), nil, true})
	self.size++
	return nil
}

func (self *batch) ValueSize() int { return self.size }

func (self *batch) Write() error {
	defer util.LockUnlock(&self.db.mu)()
	for _, op := range self.ops {
		if op.del {
			delete(self.db.kv, string(op.key))
		} else {
			self.db.kv[string(op.key)] = op.val
		}
	}
	return nil
}

func (self *batch) Reset() {
	self.ops = self.ops[:0]
	self.size = 0
}

type Factory struct {
	InitialCapacity int `yaml:"initial_capacity"`
}

func (self *Factory) NewInstance() (db.Database, error) {
	return New(self.InitialCapacity), nil
}
