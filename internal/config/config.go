// Package config loads ringd settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const EnvVarPrefix = "RINGD"

type Config struct {
	RESPAddr string `envconfig:"RESP_ADDR" yaml:"respAddr"`
	HTTPAddr string `envconfig:"HTTP_ADDR" yaml:"httpAddr"`
	LogLevel string `envconfig:"LOG_LEVEL" yaml:"logLevel"`
}

func Default() Config {
	return Config{
		RESPAddr: ":6380",
		HTTPAddr: ":8080",
		LogLevel: "INFO",
	}
}

// Load reads the YAML file at path, if path is not empty, and then applies
// RINGD_* environment variables on top. Fields set by neither keep their
// Default value.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, &c); err != nil {
			return nil, fmt.Errorf("unmarshaling config file: %w", err)
		}
	}

	if err := envconfig.Process(EnvVarPrefix, &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.RESPAddr == "" && c.HTTPAddr == "" {
		return errors.New("at least one of respAddr (RINGD_RESP_ADDR) and httpAddr (RINGD_HTTP_ADDR) must be set")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("logLevel (RINGD_LOG_LEVEL): unknown level %q", c.LogLevel)
	}
	return nil
}
