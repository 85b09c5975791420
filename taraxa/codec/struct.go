package codec

import "github.com/pkg/errors"

// StructField binds one member of record type T to its codec.
type StructField[T any] interface {
	field_name() string
	field_size() int
	encode_field(v *T) (Value, error)
	decode_field(v *T, enc Value) error
}

type struct_field[T, F any] struct {
	name  string
	codec Codec[F]
	ref   func(*T) *F
}

func FieldOf[T, F any](name string, c Codec[F], ref func(*T) *F) StructField[T] {
	return struct_field[T, F]{name, c, ref}
}

func (self struct_field[T, F]) field_name() string { return self.name }

func (self struct_field[T, F]) field_size() int { return self.codec.Size() }

func (self struct_field[T, F]) encode_field(v *T) (Value, error) {
	return self.codec.Encode(*self.ref(v))
}

func (self struct_field[T, F]) decode_field(v *T, enc Value) error {
	f, err := self.codec.Decode(enc)
	if err != nil {
		return err
	}
	*self.ref(v) = f
	return nil
}

// Struct is the codec of a composite record. Field order is part of the
// persisted format and must never change for an existing record type.
type Struct[T any] struct {
	name   string
	fields []StructField[T]
	size   int
}

func NewStruct[T any](name string, fields ...StructField[T]) *Struct[T] {
	ret := &Struct[T]{name: name, fields: fields}
	for _, f := range fields {
		ret.size += f.field_size()
	}
	return ret
}

func (self *Struct[T]) Name() string { return self.name }

func (self *Struct[T]) Size() int { return self.size }

func (self *Struct[T]) Encode(v T) (Value, error) {
	ret := make(Value, 0, self.size)
	for _, f := range self.fields {
		enc, err := f.encode_field(&v)
		if err != nil {
			return nil, wrap_field(self.name, f.field_name(), err)
		}
		ret = append(ret, enc...)
	}
	return ret, nil
}

func (self *Struct[T]) Decode(v Value) (ret T, err error) {
	if err = check_size(self.name, v, self.size); err != nil {
		return
	}
	pos := 0
	for _, f := range self.fields {
		size := f.field_size()
		if err = f.decode_field(&ret, v[pos:pos+size]); err != nil {
			err = wrap_field(self.name, f.field_name(), err)
			return
		}
		pos += size
	}
	return
}

func wrap_field(record, field string, err error) error {
	if codec_err, ok := err.(*Error); ok {
		return &Error{record + "." + field, codec_err.Err, codec_err.Detail}
	}
	return errors.Wrapf(err, "%s.%s", record, field)
}
