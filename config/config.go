package config

import (
	"io"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config represents the file based configuration of cloudping. Values set
// here win over command line flags.
type Config struct {
	Regions []string `yaml:"regions"`

	Catalog struct {
		URL     string   `yaml:"url"`
		Timeout duration `yaml:"timeout"`
	} `yaml:"catalog"`

	Probe struct {
		Interval duration `yaml:"interval"`
		Timeout  duration `yaml:"timeout"`
		Count    int      `yaml:"count"`
		Protocol string   `yaml:"protocol"`
	} `yaml:"probe"`

	Report struct {
		CSV  bool `yaml:"csv"`
		Sort bool `yaml:"sort"`
	} `yaml:"report"`

	Web struct {
		ListenAddress string `yaml:"listen-address"`
		TelemetryPath string `yaml:"telemetry-path"`
	} `yaml:"web"`
}

type duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler interface.
func (d *duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = duration(dur)
	return nil
}

// Duration is a convenience getter.
func (d duration) Duration() time.Duration {
	return time.Duration(d)
}

// Set updates the underlying duration.
func (d *duration) Set(dur time.Duration) {
	*d = duration(dur)
}

// FromYAML reads YAML from reader and unmarshals it to Config
func FromYAML(r io.Reader) (*Config, error) {
	c := &Config{}
	err := yaml.NewDecoder(r).Decode(c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
