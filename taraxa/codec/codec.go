// Package codec turns domain values into their canonical field-element form
// and back. Every encoding is deterministic and injective per type, and
// composite records concatenate their fields in declared order.
package codec

import (
	"fmt"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util"
)

const FieldSize = 32

// Field is one fixed-width scalar element, big-endian.
type Field [FieldSize]byte

// Value is the canonical representation of a domain value.
type Value []Field

var (
	ErrOutOfRange   = util.ErrorString("value out of range")
	ErrMalformed    = util.ErrorString("malformed canonical value")
	ErrInvalidPoint = util.ErrorString("not a valid curve point")
)

// Error is the codec failure reported for a key or value that does not fit
// its declared type.
type Error struct {
	Codec  string
	Err    error
	Detail string
}

func (self *Error) Error() string {
	if len(self.Detail) == 0 {
		return fmt.Sprintf("%s: %v", self.Codec, self.Err)
	}
	return fmt.Sprintf("%s: %v: %s", self.Codec, self.Err, self.Detail)
}

func (self *Error) Unwrap() error { return self.Err }

func errorf(codec string, err error, format string, args ...interface{}) *Error {
	return &Error{codec, err, fmt.Sprintf(format, args...)}
}

type Codec[T any] interface {
	Name() string
	// Size is the number of fields every encoding of T occupies.
	Size() int
	Encode(v T) (Value, error)
	Decode(v Value) (T, error)
}

func (self Value) Bytes() []byte {
	ret := make([]byte, 0, len(self)*FieldSize)
	for i := range self {
		ret = append(ret, self[i][:]...)
	}
	return ret
}

func (self Value) Equal(other Value) bool {
	if len(self) != len(other) {
		return false
	}
	for i := range self {
		if self[i] != other[i] {
			return false
		}
	}
	return true
}

func ValueFromBytes(b []byte) (Value, error) {
	if len(b)%FieldSize != 0 {
		return nil, errorf("value", ErrMalformed, "length %d is not a multiple of %d", len(b), FieldSize)
	}
	ret := make(Value, len(b)/FieldSize)
	for i := range ret {
		copy(ret[i][:], b[i*FieldSize:])
	}
	return ret, nil
}

// EncodeBytes is Encode followed by Value.Bytes.
func EncodeBytes[T any](c Codec[T], v T) ([]byte, error) {
	enc, err := c.Encode(v)
	if err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// DecodeBytes parses the persisted form of a value of c's type.
func DecodeBytes[T any](c Codec[T], b []byte) (ret T, err error) {
	v, err := ValueFromBytes(b)
	if err != nil {
		return
	}
	return c.Decode(v)
}

func check_size(name string, v Value, size int) error {
	if len(v) != size {
		return errorf(name, ErrMalformed, "expected %d fields, got %d", size, len(v))
	}
	return nil
}
