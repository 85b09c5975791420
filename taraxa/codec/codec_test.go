package codec

import (
	"errors"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type check_in struct {
	Guest     PublicKey
	CreatedAt *big.Int
	Rating    *big.Int
}

var check_in_codec = NewStruct("CheckIn",
	FieldOf("guest", PublicKeyCodec, func(v *check_in) *PublicKey { return &v.Guest }),
	FieldOf("createdAt", UInt64, func(v *check_in) **big.Int { return &v.CreatedAt }),
	FieldOf("rating", UInt64, func(v *check_in) **big.Int { return &v.Rating }),
)

func new_key(t *testing.T) PublicKey {
	priv, err := btcec.NewPrivateKey(btcec.S256())
	require.NoError(t, err)
	ret, err := ParsePublicKey(priv.PubKey().SerializeCompressed())
	require.NoError(t, err)
	return ret
}

func TestUIntRoundTrip(t *testing.T) {
	for _, c := range []UInt{UInt32, UInt64, UInt128, UInt256} {
		for _, v := range []*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(5), c.Max()} {
			enc, err := c.Encode(v)
			require.NoError(t, err)
			assert.Len(t, enc, c.Size())
			dec, err := c.Decode(enc)
			require.NoError(t, err)
			assert.Zero(t, v.Cmp(dec), "%s: %s != %s", c.Name(), v, dec)
		}
	}
}

func TestUIntRangeRejection(t *testing.T) {
	too_big := new(big.Int).Add(UInt64.Max(), big.NewInt(1))
	_, err := UInt64.Encode(too_big)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	var codec_err *Error
	assert.True(t, errors.As(err, &codec_err))
	assert.Equal(t, "UInt64", codec_err.Codec)

	_, err = UInt64.Encode(big.NewInt(-1))
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = UInt64.Encode(nil)
	assert.True(t, errors.Is(err, ErrMalformed))

	// a 128-bit word is not a canonical UInt64
	enc, err := UInt128.Encode(UInt128.Max())
	require.NoError(t, err)
	_, err = UInt64.Decode(enc)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestUIntEncodingIsInjective(t *testing.T) {
	seen := make(map[Field]int64)
	for i := int64(0); i < 1000; i++ {
		enc, err := UInt32.Encode(big.NewInt(i))
		require.NoError(t, err)
		prev, dup := seen[enc[0]]
		assert.False(t, dup, "%d collides with %d", i, prev)
		seen[enc[0]] = i
	}
}

func TestBool(t *testing.T) {
	for _, v := range []bool{true, false} {
		enc, err := Bool.Encode(v)
		require.NoError(t, err)
		dec, err := Bool.Decode(enc)
		require.NoError(t, err)
		assert.Equal(t, v, dec)
	}
	var two Field
	two[FieldSize-1] = 2
	_, err := Bool.Decode(Value{two})
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestPublicKeyRoundTrip(t *testing.T) {
	for i := 0; i < 16; i++ {
		key := new_key(t)
		enc, err := PublicKeyCodec.Encode(key)
		require.NoError(t, err)
		assert.Len(t, enc, 2)
		dec, err := PublicKeyCodec.Decode(enc)
		require.NoError(t, err)
		assert.Equal(t, key, dec)

		parsed, err := PublicKeyFromHex(key.Hex())
		require.NoError(t, err)
		assert.Equal(t, key, parsed)
	}
}

func TestPublicKeyRejectsOffCurvePoints(t *testing.T) {
	var bogus PublicKey
	bogus[0] = 0x02
	for i := 1; i < PublicKeyLength; i++ {
		bogus[i] = 0xff
	}
	_, err := PublicKeyCodec.Encode(bogus)
	assert.True(t, errors.Is(err, ErrInvalidPoint))

	_, err = ParsePublicKey([]byte{0x02, 0x01})
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestStructRoundTripAndLayout(t *testing.T) {
	v := check_in{new_key(t), big.NewInt(10), big.NewInt(5)}
	enc, err := check_in_codec.Encode(v)
	require.NoError(t, err)
	require.Len(t, enc, check_in_codec.Size())
	assert.Equal(t, 4, check_in_codec.Size())

	// fields are concatenated in declared order
	guest, _ := PublicKeyCodec.Encode(v.Guest)
	created_at, _ := UInt64.Encode(v.CreatedAt)
	rating, _ := UInt64.Encode(v.Rating)
	assert.True(t, enc[0:2].Equal(guest))
	assert.True(t, enc[2:3].Equal(created_at))
	assert.True(t, enc[3:4].Equal(rating))

	dec, err := check_in_codec.Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, v.Guest, dec.Guest)
	assert.Zero(t, v.CreatedAt.Cmp(dec.CreatedAt))
	assert.Zero(t, v.Rating.Cmp(dec.Rating))
}

func TestStructReportsFailingField(t *testing.T) {
	v := check_in{new_key(t), big.NewInt(10), new(big.Int).Lsh(big.NewInt(1), 64)}
	_, err := check_in_codec.Encode(v)
	var codec_err *Error
	require.True(t, errors.As(err, &codec_err))
	assert.Equal(t, "CheckIn.rating", codec_err.Codec)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = check_in_codec.Decode(Value{{}, {}})
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestBytesRoundTrip(t *testing.T) {
	b, err := EncodeBytes[*big.Int](UInt64, big.NewInt(1000))
	require.NoError(t, err)
	assert.Len(t, b, FieldSize)
	v, err := DecodeBytes[*big.Int](UInt64, b)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), v.Int64())

	_, err = ValueFromBytes(make([]byte, FieldSize+1))
	assert.True(t, errors.Is(err, ErrMalformed))
}
