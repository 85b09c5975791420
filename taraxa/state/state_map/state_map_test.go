package state_map

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/codec"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db/memory"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/execution"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/state_db"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/tests"
)

var balances = From("balances", "balances", codec.PublicKeyCodec, codec.Codec[*big.Int](codec.UInt64))

func setup(t *testing.T) (*execution.Executor, *state_db.DB) {
	store, err := new(state_db.DB).Init(memory.New(0), state_db.Opts{})
	require.NoError(t, err)
	return execution.NewExecutor(store, nil), store
}

func begin(t *testing.T, exec *execution.Executor, height uint64) *execution.Context {
	ctx, err := exec.Begin(execution.Metadata{Sender: tests.Key(1), BlockHeight: height})
	require.NoError(t, err)
	return ctx
}

func TestNamespacesDoNotAlias(t *testing.T) {
	a := PathOf("balances", "balances")
	b := PathOf("balances", "allowances")
	c := PathOf("mintery", "balances")
	d := PathOf("balancesb", "alances")
	assert.NotEqual(t, a.Pos(), b.Pos())
	assert.NotEqual(t, a.Pos(), c.Pos())
	assert.NotEqual(t, a.Pos(), d.Pos())
	assert.Equal(t, "balances.allowances", b.Namespace())

	k := []byte{1, 2, 3}
	assert.NotEqual(t, a.At(k), b.At(k))
	assert.Equal(t, a.At(k), PathOf("balances", "balances").At(k))
}

func TestGetSetDelete(t *testing.T) {
	exec, store := setup(t)
	alice, bob := tests.Key(1), tests.Key(2)

	ctx := begin(t, exec, 0)
	_, exists, err := balances.Get(ctx, alice)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, balances.Set(ctx, alice, big.NewInt(0)))
	v, exists, err := balances.Get(ctx, alice)
	require.NoError(t, err)
	assert.True(t, exists, "a zero value is not absence")
	assert.Equal(t, 0, v.Sign())

	require.NoError(t, balances.Set(ctx, bob, big.NewInt(10)))
	require.NoError(t, balances.Set(ctx, bob, big.NewInt(11)))
	_, exists, err = balances.GetCommitted(store, bob)
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, ctx.Commit())

	v, exists, err = balances.GetCommitted(store, bob)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, big.NewInt(11), v)

	ctx = begin(t, exec, 1)
	require.NoError(t, balances.Delete(ctx, bob))
	_, exists, err = balances.Get(ctx, bob)
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, ctx.Commit())
	_, exists, err = balances.GetCommitted(store, bob)
	require.NoError(t, err)
	assert.False(t, exists)

	v, exists, err = balances.GetAt(store, 0, bob)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, big.NewInt(11), v)
}

func TestCodecErrorsSurface(t *testing.T) {
	exec, store := setup(t)
	ctx := begin(t, exec, 0)
	err := balances.Set(ctx, tests.Key(1), new(big.Int).Lsh(big.NewInt(1), 64))
	var codec_err *codec.Error
	require.ErrorAs(t, err, &codec_err)
	assert.ErrorIs(t, err, codec.ErrOutOfRange)
	assert.Zero(t, ctx.StagedWrites())

	err = balances.Set(ctx, codec.PublicKey{}, big.NewInt(1))
	assert.ErrorAs(t, err, &codec_err)
	require.NoError(t, ctx.Commit())

	// a slot holding bytes the value codec rejects
	slot, err := balances.Slot(tests.Key(1))
	require.NoError(t, err)
	_, err = store.Commit(0, []state_db.Write{{Key: slot, Value: []byte{1, 2, 3}}})
	require.NoError(t, err)
	_, _, err = balances.GetCommitted(store, tests.Key(1))
	assert.ErrorAs(t, err, &codec_err)
}

func TestState(t *testing.T) {
	exec, store := setup(t)
	supply := StateFrom("balances", "total_supply", codec.Codec[*big.Int](codec.UInt256))
	assert.NotEqual(t, supply.Path().Pos(), balances.Path().Pos())

	ctx := begin(t, exec, 0)
	_, exists, err := supply.Get(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, supply.Set(ctx, big.NewInt(1000)))
	v, exists, err := supply.Get(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, big.NewInt(1000), v)
	require.NoError(t, ctx.Commit())

	v, exists, err = supply.GetCommitted(store)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, big.NewInt(1000), v)

	ctx = begin(t, exec, 0)
	require.NoError(t, supply.Delete(ctx))
	require.NoError(t, ctx.Commit())
	_, exists, err = supply.GetCommitted(store)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProve(t *testing.T) {
	exec, store := setup(t)
	alice, bob := tests.Key(1), tests.Key(2)
	ctx := begin(t, exec, 0)
	require.NoError(t, balances.Set(ctx, alice, big.NewInt(5)))
	require.NoError(t, ctx.Commit())

	proof, err := balances.Prove(store, alice)
	require.NoError(t, err)
	assert.Equal(t, store.GetCommittedDescriptor().StateRoot, proof.Root)
	five, six := big.NewInt(5), big.NewInt(6)
	ok, err := balances.Verify(&proof, &five)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = balances.Verify(&proof, &six)
	require.NoError(t, err)
	assert.False(t, ok)

	proof, err = balances.Prove(store, bob)
	require.NoError(t, err)
	ok, err = balances.Verify(&proof, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}
