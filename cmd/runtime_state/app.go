package main

import (
	"github.com/pkg/errors"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/metric_utils"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/runtime/modules"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/execution"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/state_config"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/state_db"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/logging"
)

type app struct {
	config  state_config.Config
	store   *state_db.DB
	exec    *execution.Executor
	metrics *metric_utils.Collector
	modules.Runtime
}

func openApp(path string) (*app, error) {
	cfg, err := state_config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := logging.Configure(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "configure logging")
	}
	rt, err := modules.Build(cfg.Modules)
	if err != nil {
		return nil, err
	}
	backend, err := cfg.DB.NewInstance()
	if err != nil {
		return nil, errors.Wrapf(err, "open %s db", cfg.DB.Type)
	}
	store, err := new(state_db.DB).Init(backend, cfg.State)
	if err != nil {
		backend.Close()
		return nil, err
	}
	metrics := metric_utils.NewCollector(cfg.Metrics.Namespace)
	return &app{
		config:  cfg,
		store:   store,
		exec:    execution.NewExecutor(store, metrics),
		metrics: metrics,
		Runtime: rt,
	}, nil
}

func (self *app) Close() error { return self.store.Close() }

// withApp opens the app for the duration of fn.
func withApp(fn func(*app) error) error {
	a, err := openApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
