package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/joshuapare/hiveparse/hive"
	"github.com/joshuapare/hiveparse/hive/printer"
)

// Config holds settings read from hivectl.yaml, HIVECTL_* environment
// variables, and command-line flags, in increasing precedence.
type Config struct {
	MaxDepth int    `mapstructure:"max_depth"`
	Output   string `mapstructure:"output"`
	LogLevel string `mapstructure:"log_level"`
	Workers  int    `mapstructure:"workers"`

	// Source is the config file used, empty when none was found.
	Source string `mapstructure:"-"`
}

func defaultConfig() *Config {
	return &Config{
		MaxDepth: hive.DefaultMaxDepth,
		Output:   string(printer.FormatText),
		LogLevel: "warn",
		Workers:  4,
	}
}

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"max-depth": "max_depth",
	"log-level": "log_level",
}

// loadConfig reads configuration. An explicit path must exist; otherwise a
// missing hivectl.yaml is not an error.
func loadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hivectl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.hivectl")
		v.AddConfigPath("/etc/hivectl")
	}

	d := defaultConfig()
	v.SetDefault("max_depth", d.MaxDepth)
	v.SetDefault("output", d.Output)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("workers", d.Workers)

	v.SetEnvPrefix("HIVECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for flag, key := range flagKeys {
			if f := flags.Lookup(flag); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	c.Source = v.ConfigFileUsed()

	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = hive.DefaultMaxDepth
	}
	if _, err := printer.ParseFormat(c.Output); err != nil {
		return nil, fmt.Errorf("config output: %w", err)
	}
	return &c, nil
}
