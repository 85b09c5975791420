package state_map

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/codec"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/execution"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/state_db"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/trie"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/keccak256"
)

// CommittedReader reads the last committed state, e.g. *state_db.DB.
type CommittedReader interface {
	Get(key *common.Hash) ([]byte, error)
}

type HistoricalReader interface {
	GetAt(height uint64, key *common.Hash) ([]byte, error)
}

type Prover interface {
	Prove(key *common.Hash) (trie.Proof, state_db.StateDescriptor, error)
}

// StateMap is a typed view of the slots of one namespace.
type StateMap[K, V any] struct {
	path   Path
	keys   codec.Codec[K]
	values codec.Codec[V]
}

func From[K, V any](module, property string, keys codec.Codec[K], values codec.Codec[V]) *StateMap[K, V] {
	return &StateMap[K, V]{PathOf(module, property), keys, values}
}

func (self *StateMap[K, V]) Path() Path { return self.path }

func (self *StateMap[K, V]) Slot(key K) (common.Hash, error) {
	enc, err := codec.EncodeBytes(self.keys, key)
	if err != nil {
		return common.Hash{}, err
	}
	return self.path.At(enc), nil
}

func (self *StateMap[K, V]) decode(enc []byte) (ret V, exists bool, err error) {
	if enc == nil {
		return
	}
	ret, err = codec.DecodeBytes(self.values, enc)
	return ret, err == nil, err
}

// Get reads key through ctx, seeing its staged writes.
func (self *StateMap[K, V]) Get(ctx *execution.Context, key K) (V, bool, error) {
	return self.read(ctx, key)
}

func (self *StateMap[K, V]) Set(ctx *execution.Context, key K, value V) error {
	slot, err := self.Slot(key)
	if err != nil {
		return err
	}
	enc, err := codec.EncodeBytes(self.values, value)
	if err != nil {
		return err
	}
	return ctx.Set(self.path.Namespace(), slot, enc)
}

func (self *StateMap[K, V]) Delete(ctx *execution.Context, key K) error {
	slot, err := self.Slot(key)
	if err != nil {
		return err
	}
	return ctx.Delete(self.path.Namespace(), slot)
}

// GetCommitted reads key from committed state, outside of any context.
func (self *StateMap[K, V]) GetCommitted(r CommittedReader, key K) (V, bool, error) {
	return self.read(r, key)
}

func (self *StateMap[K, V]) read(r CommittedReader, key K) (ret V, exists bool, err error) {
	slot, err := self.Slot(key)
	if err != nil {
		return
	}
	enc, err := r.Get(&slot)
	if err != nil {
		return
	}
	return self.decode(enc)
}

func (self *StateMap[K, V]) GetAt(r HistoricalReader, height uint64, key K) (ret V, exists bool, err error) {
	slot, err := self.Slot(key)
	if err != nil {
		return
	}
	enc, err := r.GetAt(height, &slot)
	if err != nil {
		return
	}
	return self.decode(enc)
}

// SlotProof shows that a slot holds a value, or that it is absent, under
// a committed root.
type SlotProof struct {
	Slot     common.Hash
	Root     common.Hash
	BlockNum uint64
	Proof    trie.Proof
}

func (self *StateMap[K, V]) Prove(p Prover, key K) (ret SlotProof, err error) {
	if ret.Slot, err = self.Slot(key); err != nil {
		return
	}
	var desc state_db.StateDescriptor
	if ret.Proof, desc, err = p.Prove(&ret.Slot); err != nil {
		return
	}
	ret.Root, ret.BlockNum = desc.StateRoot, desc.BlockNum
	return
}

// Verify checks the proof. value nil means the proof must show absence.
func (self *StateMap[K, V]) Verify(proof *SlotProof, value *V) (bool, error) {
	val_hash, exists, err := proof.Proof.Verify(&proof.Root, &proof.Slot)
	if err != nil {
		return false, err
	}
	if value == nil {
		return !exists, nil
	}
	if !exists {
		return false, nil
	}
	enc, err := codec.EncodeBytes(self.values, *value)
	if err != nil {
		return false, err
	}
	return keccak256.Hash(enc) == val_hash, nil
}
