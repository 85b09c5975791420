package state_config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db/factory"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db/leveldb"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/runtime/modules"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/state_db"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/logging"
)

const (
	EnvDBType   = "TARAXA_RUNTIME_DB_TYPE"
	EnvDBPath   = "TARAXA_RUNTIME_DB_PATH"
	EnvLogLevel = "TARAXA_RUNTIME_LOG_LEVEL"
)

type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
}

type Config struct {
	DB      factory.GenericFactory `yaml:"db"`
	State   state_db.Opts          `yaml:"state"`
	Log     logging.Config         `yaml:"log"`
	Metrics MetricsConfig          `yaml:"metrics"`
	Modules modules.Config         `yaml:"modules"`
}

func Default() Config {
	return Config{
		DB:      factory.GenericFactory{Type: "leveldb", Factory: &leveldb.Factory{File: "runtime_state_db", Cache: 16, Handles: 64}},
		State:   state_db.DefaultOpts,
		Log:     logging.Config{Level: "info", Format: "text"},
		Metrics: MetricsConfig{Namespace: "runtime_state"},
		Modules: modules.DefaultConfig,
	}
}

// Load reads the file at path over the defaults, then applies the
// environment. An empty path skips the file.
func Load(path string) (Config, error) {
	ret := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return ret, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(data, &ret); err != nil {
			return ret, errors.Wrapf(err, "parse config %s", path)
		}
	}
	return ret, ret.ApplyEnv(os.LookupEnv)
}

func (self *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	env := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}
	if t := env(EnvDBType); t != "" {
		if err := self.DB.SetType(t); err != nil {
			return errors.Wrap(err, EnvDBType)
		}
	}
	if p := env(EnvDBPath); p != "" {
		if err := self.DB.SetPath(p); err != nil {
			return errors.Wrap(err, EnvDBPath)
		}
	}
	if l := env(EnvLogLevel); l != "" {
		self.Log.Level = l
	}
	return nil
}
