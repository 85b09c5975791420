package codec

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/asserts"
)

// UInt encodes unsigned integers of a declared bit width into one field.
type UInt struct {
	Bits int
}

var (
	UInt32  = UInt{32}
	UInt64  = UInt{64}
	UInt128 = UInt{128}
	UInt256 = UInt{256}
)

func (self UInt) Name() string { return fmt.Sprintf("UInt%d", self.Bits) }

func (self UInt) Size() int { return 1 }

func (self UInt) Max() *big.Int {
	asserts.Holds(0 < self.Bits && self.Bits <= 256)
	ret := new(big.Int).Lsh(big.NewInt(1), uint(self.Bits))
	return ret.Sub(ret, big.NewInt(1))
}

func (self UInt) Encode(v *big.Int) (Value, error) {
	if v == nil {
		return nil, errorf(self.Name(), ErrMalformed, "nil integer")
	}
	if v.Sign() < 0 || v.BitLen() > self.Bits {
		return nil, errorf(self.Name(), ErrOutOfRange, "%s does not fit into %d bits", v, self.Bits)
	}
	word, overflow := uint256.FromBig(v)
	asserts.Holds(!overflow)
	return Value{word.Bytes32()}, nil
}

func (self UInt) Decode(v Value) (*big.Int, error) {
	if err := check_size(self.Name(), v, 1); err != nil {
		return nil, err
	}
	word := new(uint256.Int).SetBytes32(v[0][:])
	if word.BitLen() > self.Bits {
		return nil, errorf(self.Name(), ErrOutOfRange, "word has %d significant bits", word.BitLen())
	}
	return word.ToBig(), nil
}

// Bool occupies one field holding 0 or 1.
type boolCodec struct{}

var Bool Codec[bool] = boolCodec{}

func (boolCodec) Name() string { return "Bool" }

func (boolCodec) Size() int { return 1 }

func (boolCodec) Encode(v bool) (Value, error) {
	var f Field
	if v {
		f[FieldSize-1] = 1
	}
	return Value{f}, nil
}

func (self boolCodec) Decode(v Value) (bool, error) {
	if err := check_size(self.Name(), v, 1); err != nil {
		return false, err
	}
	var zero, one Field
	one[FieldSize-1] = 1
	switch v[0] {
	case zero:
		return false, nil
	case one:
		return true, nil
	}
	return false, errorf(self.Name(), ErrOutOfRange, "field is neither 0 nor 1")
}
