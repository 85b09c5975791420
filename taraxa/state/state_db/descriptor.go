package state_db

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

type StateDescriptor struct {
	BlockNum  uint64
	StateRoot common.Hash
}

func (self *StateDescriptor) encode() []byte {
	ret, err := rlp.EncodeToBytes(self)
	if err != nil {
		panic(err)
	}
	return ret
}

func decode_descriptor(enc []byte) (ret StateDescriptor, err error) {
	err = rlp.DecodeBytes(enc, &ret)
	return
}
