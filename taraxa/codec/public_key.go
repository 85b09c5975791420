package codec

import (
	"github.com/btcsuite/btcd/btcec"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const PublicKeyLength = 33

// PublicKey is a compressed secp256k1 point. It identifies invoking accounts.
type PublicKey [PublicKeyLength]byte

func ParsePublicKey(b []byte) (ret PublicKey, err error) {
	if len(b) != PublicKeyLength {
		err = errorf("PublicKey", ErrMalformed, "expected %d bytes, got %d", PublicKeyLength, len(b))
		return
	}
	if _, parse_err := btcec.ParsePubKey(b, btcec.S256()); parse_err != nil {
		err = errorf("PublicKey", ErrInvalidPoint, "%v", parse_err)
		return
	}
	copy(ret[:], b)
	return
}

func PublicKeyFromHex(s string) (PublicKey, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return PublicKey{}, errorf("PublicKey", ErrMalformed, "%v", err)
	}
	return ParsePublicKey(b)
}

func (self PublicKey) Hex() string { return hexutil.Encode(self[:]) }

func (self PublicKey) String() string { return self.Hex() }

func (self PublicKey) IsZero() bool { return self == PublicKey{} }

// The point is stored as its x coordinate followed by the parity of y.
type publicKeyCodec struct{}

var PublicKeyCodec Codec[PublicKey] = publicKeyCodec{}

func (publicKeyCodec) Name() string { return "PublicKey" }

func (publicKeyCodec) Size() int { return 2 }

func (self publicKeyCodec) Encode(v PublicKey) (Value, error) {
	if _, err := ParsePublicKey(v[:]); err != nil {
		return nil, err
	}
	var x, is_odd Field
	copy(x[:], v[1:])
	if v[0] == 0x03 {
		is_odd[FieldSize-1] = 1
	}
	return Value{x, is_odd}, nil
}

func (self publicKeyCodec) Decode(v Value) (ret PublicKey, err error) {
	if err = check_size(self.Name(), v, 2); err != nil {
		return
	}
	is_odd, err := Bool.Decode(v[1:])
	if err != nil {
		return
	}
	ret[0] = 0x02
	if is_odd {
		ret[0] = 0x03
	}
	copy(ret[1:], v[0][:])
	return ParsePublicKey(ret[:])
}
