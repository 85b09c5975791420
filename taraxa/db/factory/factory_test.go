package factory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db/leveldb"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db/memory"
)

func exercise(t *testing.T, d db.Database) {
	v, err := d.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, v)

	b := d.NewBatch()
	require.NoError(t, b.Put([]byte("a"), []byte("1")))
	require.NoError(t, b.Put([]byte("b"), []byte("22")))
	assert.Equal(t, 3, b.ValueSize())
	v, err = d.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, v, "batch must not be visible before Write")
	require.NoError(t, b.Write())

	v, err = d.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("22"), v)

	b.Reset()
	assert.Zero(t, b.ValueSize())
	require.NoError(t, b.Delete([]byte("a")))
	require.NoError(t, b.Write())
	v, err = d.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, v)
	require.NoError(t, d.Close())
}

func TestBackends(t *testing.T) {
	for _, f := range []Factory{
		&memory.Factory{},
		&leveldb.Factory{},
		&leveldb.Factory{File: filepath.Join(t.TempDir(), "db")},
	} {
		d, err := f.NewInstance()
		require.NoError(t, err)
		exercise(t, d)
	}
}

func TestUnmarshalYAML(t *testing.T) {
	var f GenericFactory
	require.NoError(t, yaml.Unmarshal([]byte("type: leveldb\noptions:\n  cache: 16\n  handles: 32\n"), &f))
	assert.Equal(t, "leveldb", f.Type)
	assert.Equal(t, &leveldb.Factory{Cache: 16, Handles: 32}, f.Factory)

	f = GenericFactory{}
	require.NoError(t, yaml.Unmarshal([]byte("type: memory\n"), &f))
	assert.IsType(t, &memory.Factory{}, f.Factory)
	d, err := f.NewInstance()
	require.NoError(t, err)
	exercise(t, d)

	err = yaml.Unmarshal([]byte("type: nosuchdb\n"), &GenericFactory{})
	assert.ErrorContains(t, err, "nosuchdb")
}

func TestLazyInit(t *testing.T) {
	f := GenericFactory{Type: "memory"}
	d, err := f.NewInstance()
	require.NoError(t, err)
	assert.NoError(t, d.Close())
}

func TestOverrides(t *testing.T) {
	f := GenericFactory{Type: "memory"}
	assert.Error(t, f.SetPath("/tmp/x"))
	require.NoError(t, f.SetType("leveldb"))
	require.NoError(t, f.SetPath("/tmp/x"))
	assert.Equal(t, &leveldb.Factory{File: "/tmp/x"}, f.Factory)
	assert.Error(t, f.SetType("nosuchdb"))
}
