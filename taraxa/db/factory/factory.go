package factory

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db/leveldb"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db/memory"
)

type Factory interface {
	NewInstance() (db.Database, error)
}

var Registry = map[string]func() Factory{
	"leveldb": func() Factory {
		return new(leveldb.Factory)
	},
	"memory": func() Factory {
		return new(memory.Factory)
	},
}

// PathSetter is implemented by factories of on-disk databases.
type PathSetter interface {
	SetPath(path string)
}

type GenericFactory struct {
	Type    string
	Factory Factory
}

func (self *GenericFactory) NewInstance() (db.Database, error) {
	if self.Factory == nil {
		if err := self.init(); err != nil {
			return nil, err
		}
	}
	return self.Factory.NewInstance()
}

func (self *GenericFactory) init() error {
	new_factory, ok := Registry[self.Type]
	if !ok {
		return errors.Errorf("unknown db type: %q", self.Type)
	}
	self.Factory = new_factory()
	return nil
}

// SetType replaces the factory by a default one of the given type.
func (self *GenericFactory) SetType(db_type string) error {
	self.Type, self.Factory = db_type, nil
	return self.init()
}

func (self *GenericFactory) SetPath(path string) error {
	if self.Factory == nil {
		if err := self.init(); err != nil {
			return err
		}
	}
	setter, ok := self.Factory.(PathSetter)
	if !ok {
		return errors.Errorf("db type %q has no path", self.Type)
	}
	setter.SetPath(path)
	return nil
}

// UnmarshalYAML reads {type: ..., options: {...}}, the options being
// decoded into the factory registered for type.
func (self *GenericFactory) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Type    string    `yaml:"type"`
		Options yaml.Node `yaml:"options"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	self.Type = raw.Type
	if err := self.init(); err != nil {
		return err
	}
	if raw.Options.Kind == 0 {
		return nil
	}
	return errors.Wrapf(raw.Options.Decode(self.Factory), "%s options", self.Type)
}

func (self GenericFactory) MarshalYAML() (interface{}, error) {
	return struct {
		Type    string  `yaml:"type"`
		Options Factory `yaml:"options,omitempty"`
	}{self.Type, self.Factory}, nil
}
