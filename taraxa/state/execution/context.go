package execution

import (
	"sync"

	mapset "github.com/deckarep/golang-set"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-stack/stack"
	"github.com/google/uuid"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/codec"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/state_db"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util"
)

type Status int

const (
	StatusPending Status = iota
	StatusCommitted
	StatusAborted
)

func (self Status) String() string {
	switch self {
	case StatusPending:
		return "pending"
	case StatusCommitted:
		return "committed"
	case StatusAborted:
		return "aborted"
	}
	return "unknown"
}

type Metadata struct {
	Sender      codec.PublicKey
	BlockHeight uint64
}

// Store is the committed state a context reads from and merges into.
type Store interface {
	Get(key *common.Hash) ([]byte, error)
	Commit(height uint64, writes []state_db.Write) (state_db.StateDescriptor, error)
	GetCommittedDescriptor() state_db.StateDescriptor
}

type Result struct {
	Success bool
	Message string
	Status  Status
}

type pending_write struct {
	// nil for a deletion
	value []byte
}

// Context is the unit of atomicity of one invocation. Writes are staged
// in the context and become visible to others only on Commit.
type Context struct {
	id          uuid.UUID
	meta        Metadata
	store       Store
	mu          sync.Mutex
	status      Status
	failure     *AssertionFailure
	fault       *CommitFault
	pending     *linkedhashmap.Map
	touched     mapset.Set
	on_finalize func(*Context)
}

func (self *Context) init(store Store, meta Metadata, on_finalize func(*Context)) *Context {
	self.id = uuid.New()
	self.meta = meta
	self.store = store
	self.pending = linkedhashmap.New()
	self.touched = mapset.NewSet()
	self.on_finalize = on_finalize
	return self
}

func (self *Context) ID() string              { return self.id.String() }
func (self *Context) Sender() codec.PublicKey { return self.meta.Sender }
func (self *Context) BlockHeight() uint64     { return self.meta.BlockHeight }

func (self *Context) Status() Status {
	defer util.LockUnlock(&self.mu)()
	return self.status
}

// Touched lists the namespaces written by this context.
func (self *Context) Touched() (ret []string) {
	for _, ns := range self.touched.ToSlice() {
		ret = append(ret, ns.(string))
	}
	return
}

// Get returns the staged value of key if there is one, the committed one
// otherwise. Aborted contexts only see committed state.
func (self *Context) Get(key *common.Hash) ([]byte, error) {
	self.mu.Lock()
	if self.status == StatusPending {
		if w, ok := self.pending.Get(*key); ok {
			self.mu.Unlock()
			return w.(pending_write).value, nil
		}
	}
	self.mu.Unlock()
	return self.store.Get(key)
}

// Set stages a write. It is a no-op on an aborted context.
func (self *Context) Set(namespace string, key common.Hash, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	return self.stage(namespace, key, common.CopyBytes(value))
}

// Delete stages the removal of a slot.
func (self *Context) Delete(namespace string, key common.Hash) error {
	return self.stage(namespace, key, nil)
}

func (self *Context) stage(namespace string, key common.Hash, value []byte) error {
	defer util.LockUnlock(&self.mu)()
	switch self.status {
	case StatusAborted:
		return nil
	case StatusCommitted:
		return ErrFinalized
	}
	// re-inserting keeps the position of the first write
	self.pending.Put(key, pending_write{value})
	self.touched.Add(namespace)
	return nil
}

// Assert aborts the context with msg unless cond holds. The first failed
// assertion determines the reason.
func (self *Context) Assert(cond bool, msg string) bool {
	if !cond {
		self.abort(msg, stack.Caller(1))
	}
	return cond
}

// Abort discards the staged writes.
func (self *Context) Abort(reason string) {
	self.abort(reason, stack.Caller(1))
}

func (self *Context) abort(reason string, caller stack.Call) {
	self.mu.Lock()
	if self.status != StatusPending {
		self.mu.Unlock()
		return
	}
	self.status = StatusAborted
	self.failure = &AssertionFailure{Message: reason, Caller: caller}
	self.pending.Clear()
	self.mu.Unlock()
	self.finalize()
}

// Commit merges the staged writes into the committed state. An aborted
// context returns its *AssertionFailure. A storage failure returns a
// *CommitFault and leaves the context aborted with nothing merged.
func (self *Context) Commit() error {
	self.mu.Lock()
	switch self.status {
	case StatusAborted:
		defer self.mu.Unlock()
		if self.fault != nil {
			return self.fault
		}
		return self.failure
	case StatusCommitted:
		self.mu.Unlock()
		return ErrFinalized
	}
	writes := make([]state_db.Write, 0, self.pending.Size())
	self.pending.Each(func(k, v interface{}) {
		writes = append(writes, state_db.Write{Key: k.(common.Hash), Value: v.(pending_write).value})
	})
	self.pending.Clear()
	if _, err := self.store.Commit(self.meta.BlockHeight, writes); err != nil {
		self.status = StatusAborted
		self.fault = &CommitFault{err}
		self.mu.Unlock()
		self.finalize()
		return self.fault
	}
	self.status = StatusCommitted
	self.mu.Unlock()
	self.finalize()
	return nil
}

func (self *Context) StagedWrites() int {
	defer util.LockUnlock(&self.mu)()
	return self.pending.Size()
}

func (self *Context) Result() Result {
	defer util.LockUnlock(&self.mu)()
	ret := Result{Status: self.status, Success: self.status == StatusCommitted}
	if self.fault != nil {
		ret.Message = self.fault.Error()
	} else if self.failure != nil {
		ret.Message = self.failure.Message
	}
	return ret
}

// Failure is the assertion failure of an aborted context, nil otherwise.
func (self *Context) Failure() *AssertionFailure {
	defer util.LockUnlock(&self.mu)()
	return self.failure
}

func (self *Context) finalize() {
	if self.on_finalize != nil {
		self.on_finalize(self)
	}
}
