// Package modules registers the built-in runtime modules.
package modules

import (
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/runtime"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/runtime/modules/balances"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/runtime/modules/guest_book"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/runtime/modules/mintery"
)

type Config struct {
	GuestBook guest_book.Config `yaml:"guest_book"`
}

var DefaultConfig = Config{GuestBook: guest_book.DefaultConfig}

func Register(registry *runtime.Registry, config Config) error {
	if err := registry.Register(balances.Name, nil, balances.Factory); err != nil {
		return err
	}
	if err := registry.Register(mintery.Name, mintery.Deps, mintery.Factory); err != nil {
		return err
	}
	return registry.Register(guest_book.Name, nil, guest_book.FactoryWith(config.GuestBook))
}

// Runtime is the built registry with typed access to each module.
type Runtime struct {
	Registry  *runtime.Registry
	Balances  *balances.Balances
	Mintery   *mintery.Mintery
	GuestBook *guest_book.GuestBook
}

func Build(config Config) (ret Runtime, err error) {
	ret.Registry = runtime.NewRegistry()
	if err = Register(ret.Registry, config); err != nil {
		return
	}
	if err = ret.Registry.Build(); err != nil {
		return
	}
	if ret.Balances, err = runtime.Resolve[*balances.Balances](ret.Registry, balances.Name); err != nil {
		return
	}
	if ret.Mintery, err = runtime.Resolve[*mintery.Mintery](ret.Registry, mintery.Name); err != nil {
		return
	}
	ret.GuestBook, err = runtime.Resolve[*guest_book.GuestBook](ret.Registry, guest_book.Name)
	return
}
