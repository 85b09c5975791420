package tests

import (
	"os"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/stretchr/testify/assert"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/codec"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/asserts"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/bin"
)

type TestCtx struct {
	*testing.T
	Assert   assert.Assertions
	data_dir string
}

func NewTestCtx(t *testing.T) (ret TestCtx) {
	ret.T = t
	ret.Assert = *assert.New(t)
	return
}

func (self *TestCtx) Close() {
	if len(self.data_dir) != 0 {
		util.PanicIfNotNil(os.RemoveAll(self.data_dir))
	}
}

func (self *TestCtx) DataDir() string {
	if len(self.data_dir) != 0 {
		return self.data_dir
	}
	dir, err := os.MkdirTemp("", "taraxa-runtime-state-")
	util.PanicIfNotNil(err)
	self.data_dir = dir
	return self.data_dir
}

// Key returns a deterministic public key for the i-th test account.
func Key(i uint64) codec.PublicKey {
	asserts.Holds(i > 0)
	seed := bin.Concat(make([]byte, 24), bin.ENC_b_endian_64(i)...)
	_, pub := btcec.PrivKeyFromBytes(btcec.S256(), seed)
	ret, err := codec.ParsePublicKey(pub.SerializeCompressed())
	util.PanicIfNotNil(err)
	return ret
}
