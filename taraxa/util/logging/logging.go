package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

var root = func() *logrus.Logger {
	ret := logrus.New()
	ret.SetLevel(logrus.InfoLevel)
	ret.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return ret
}()

type Config struct {
	Level string `yaml:"level"`
	// text or json
	Format string `yaml:"format"`
}

func Configure(cfg Config) error {
	if cfg.Level != "" {
		lvl, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
		root.SetLevel(lvl)
	}
	if strings.EqualFold(cfg.Format, "json") {
		root.SetFormatter(&logrus.JSONFormatter{})
	} else {
		root.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func SetOutput(w io.Writer) { root.SetOutput(w) }

func Level() logrus.Level { return root.GetLevel() }

// Module returns the logger of one component.
func Module(name string) *logrus.Entry {
	return root.WithField("module", name)
}
