package runtime

import (
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/state_map"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util"
)

var (
	ErrDuplicateModule   = util.ErrorString("module registered twice")
	ErrMissingDependency = util.ErrorString("missing module dependency")
	ErrDependencyCycle   = util.ErrorString("module dependency cycle")
	ErrDuplicateState    = util.ErrorString("state property declared twice")
	ErrUnknownModule     = util.ErrorString("unknown module")
	ErrNotBuilt          = util.ErrorString("registry is not built")
)

// Descriptor lists the state a module declares.
type Descriptor struct {
	State []state_map.Path
}

type Module interface {
	Descriptor() Descriptor
}

// Deps gives a factory the modules it declared as dependencies.
type Deps map[string]Module

// Dep returns the dependency called name as T.
func Dep[T any](deps Deps, name string) (ret T, err error) {
	m, ok := deps[name]
	if !ok {
		return ret, errors.Wrap(ErrMissingDependency, name)
	}
	if ret, ok = m.(T); !ok {
		return ret, errors.Errorf("module %s is %T", name, m)
	}
	return
}

type Factory func(deps Deps) (Module, error)

type entry struct {
	deps    []string
	factory Factory
}

// Registry builds modules in dependency order. Modules are registered
// explicitly by the host.
type Registry struct {
	entries map[string]entry
	order   []string
	modules map[string]Module
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

func (self *Registry) Register(name string, deps []string, factory Factory) error {
	if _, exists := self.entries[name]; exists {
		return errors.Wrap(ErrDuplicateModule, name)
	}
	self.entries[name] = entry{append([]string(nil), deps...), factory}
	return nil
}

// Build instantiates every registered module, dependencies first.
func (self *Registry) Build() error {
	names := make([]string, 0, len(self.entries))
	for name := range self.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	const (
		unvisited = iota
		visiting
		done
	)
	marks := make(map[string]int, len(names))
	var order []string
	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		e, ok := self.entries[name]
		if !ok {
			return errors.Wrapf(ErrMissingDependency, "%s (required by %s)", name, path[len(path)-1])
		}
		switch marks[name] {
		case visiting:
			return errors.Wrap(ErrDependencyCycle, strings.Join(append(path, name), " -> "))
		case done:
			return nil
		}
		marks[name] = visiting
		for _, dep := range e.deps {
			if err := visit(dep, append(path, name)); err != nil {
				return err
			}
		}
		marks[name] = done
		order = append(order, name)
		return nil
	}
	for _, name := range names {
		if err := visit(name, nil); err != nil {
			return err
		}
	}
	modules := make(map[string]Module, len(order))
	declared := make(map[common.Hash]string)
	for _, name := range order {
		e := self.entries[name]
		deps := make(Deps, len(e.deps))
		for _, dep := range e.deps {
			deps[dep] = modules[dep]
		}
		m, err := e.factory(deps)
		if err != nil {
			return errors.Wrapf(err, "build module %s", name)
		}
		for _, p := range m.Descriptor().State {
			if owner, taken := declared[p.Pos()]; taken {
				return errors.Wrapf(ErrDuplicateState, "%s by %s and %s", p.Namespace(), owner, name)
			}
			declared[p.Pos()] = name
		}
		modules[name] = m
	}
	self.order, self.modules = order, modules
	return nil
}

// Modules lists module names in build order.
func (self *Registry) Modules() []string {
	return append([]string(nil), self.order...)
}

func (self *Registry) Module(name string) (Module, error) {
	if self.modules == nil {
		return nil, ErrNotBuilt
	}
	m, ok := self.modules[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownModule, name)
	}
	return m, nil
}

// Resolve is Module with a type assertion.
func Resolve[T any](registry *Registry, name string) (ret T, err error) {
	m, err := registry.Module(name)
	if err != nil {
		return
	}
	ret, ok := m.(T)
	if !ok {
		err = errors.Errorf("module %s is %T", name, m)
	}
	return
}
