package state_map

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/codec"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/execution"
)

// State is a single slot value.
type State[V any] struct {
	path   Path
	values codec.Codec[V]
}

func StateFrom[V any](module, property string, values codec.Codec[V]) *State[V] {
	return &State[V]{PathOf(module, property), values}
}

func (self *State[V]) Path() Path { return self.path }

func (self *State[V]) slot() common.Hash { return self.path.Pos() }

func (self *State[V]) decode(enc []byte) (ret V, exists bool, err error) {
	if enc == nil {
		return
	}
	ret, err = codec.DecodeBytes(self.values, enc)
	return ret, err == nil, err
}

func (self *State[V]) Get(ctx *execution.Context) (V, bool, error) {
	return self.GetCommitted(ctx)
}

func (self *State[V]) GetCommitted(r CommittedReader) (ret V, exists bool, err error) {
	slot := self.slot()
	enc, err := r.Get(&slot)
	if err != nil {
		return
	}
	return self.decode(enc)
}

func (self *State[V]) Set(ctx *execution.Context, value V) error {
	enc, err := codec.EncodeBytes(self.values, value)
	if err != nil {
		return err
	}
	return ctx.Set(self.path.Namespace(), self.slot(), enc)
}

func (self *State[V]) Delete(ctx *execution.Context) error {
	return ctx.Delete(self.path.Namespace(), self.slot())
}
