package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/state_map"
)

type fake_module struct {
	name  string
	deps  Deps
	state []state_map.Path
}

func (self *fake_module) Descriptor() Descriptor { return Descriptor{State: self.state} }

func fake(name string, properties ...string) Factory {
	return func(deps Deps) (Module, error) {
		ret := &fake_module{name: name, deps: deps}
		for _, p := range properties {
			ret.state = append(ret.state, state_map.PathOf(name, p))
		}
		return ret, nil
	}
}

func TestBuildResolvesDependenciesFirst(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("c", []string{"b"}, fake("c")))
	require.NoError(t, r.Register("b", []string{"a"}, fake("b")))
	require.NoError(t, r.Register("a", nil, fake("a", "x")))
	require.NoError(t, r.Build())
	assert.Equal(t, []string{"a", "b", "c"}, r.Modules())

	b, err := Resolve[*fake_module](r, "b")
	require.NoError(t, err)
	a, err := Dep[*fake_module](b.deps, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", a.name)
	_, err = Dep[*fake_module](b.deps, "c")
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestRegisterTwice(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("a", nil, fake("a")))
	assert.ErrorIs(t, r.Register("a", nil, fake("a")), ErrDuplicateModule)
}

func TestMissingDependency(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("a", []string{"ghost"}, fake("a")))
	err := r.Build()
	assert.ErrorIs(t, err, ErrMissingDependency)
	assert.ErrorContains(t, err, "ghost")
}

func TestCycle(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("a", []string{"b"}, fake("a")))
	require.NoError(t, r.Register("b", []string{"a"}, fake("b")))
	err := r.Build()
	assert.ErrorIs(t, err, ErrDependencyCycle)
	assert.ErrorContains(t, err, "a -> b -> a")
}

func TestDuplicateState(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("a", nil, fake("a", "x")))
	require.NoError(t, r.Register("b", nil, func(Deps) (Module, error) {
		return &fake_module{state: []state_map.Path{state_map.PathOf("a", "x")}}, nil
	}))
	assert.ErrorIs(t, r.Build(), ErrDuplicateState)
}

func TestResolve(t *testing.T) {
	r := NewRegistry()
	_, err := r.Module("a")
	assert.ErrorIs(t, err, ErrNotBuilt)
	require.NoError(t, r.Register("a", nil, fake("a")))
	require.NoError(t, r.Build())
	_, err = Resolve[*fake_module](r, "nope")
	assert.ErrorIs(t, err, ErrUnknownModule)
	_, err = Resolve[*Registry](r, "a")
	assert.Error(t, err)
}
