package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/YuukanOO/FBlock/components/csvio"
)

// config holds the job options. It is read from a YAML file, then command
// line flags override the values they set explicitly.
type config struct {
	Header    bool     `yaml:"header"`
	Separator string   `yaml:"separator"`
	Columns   []string `yaml:"columns"`
	Dot       string   `yaml:"dot"`
	Verbose   bool     `yaml:"verbose"`
}

func defaultConfig() config {
	return config{Separator: csvio.DefaultSeparator}
}

func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "unable to read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "unable to parse config %s", path)
	}
	return nil
}
