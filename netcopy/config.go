package netcopy

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the startup configuration, loaded once and handed to the
// exchange.
type Config struct {
	BaseDir     string `mapstructure:"base_dir"`
	PayloadName string `mapstructure:"payload_name"`
	AtomicWrite bool   `mapstructure:"atomic_write"`
	LogDir      string `mapstructure:"log_dir"`
	LogLevel    string `mapstructure:"log_level"`
}

// flagKeys maps CLI flag names onto configuration keys.
var flagKeys = map[string]string{
	"base-dir":     "base_dir",
	"payload-name": "payload_name",
	"atomic-write": "atomic_write",
	"log-dir":      "log_dir",
	"log-level":    "log_level",
}

// LoadConfig reads the YAML settings file at path and overlays any changed
// flags from flags (which may be nil). A missing file is tolerated as long
// as base_dir ends up set some other way.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	l := sub("config")

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("payload_name", DefaultPayloadName)
	v.SetDefault("atomic_write", false)
	v.SetDefault("log_level", "info")

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfigMalformed, path, err)
		}
		l.Debug("settings file absent", "path", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigMalformed, path, err)
	}

	if strings.TrimSpace(cfg.BaseDir) == "" {
		return nil, fmt.Errorf("%w: base_dir not set in %s", ErrConfigMissing, path)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	l.Debug("config loaded", "path", path, "baseDir", cfg.BaseDir, "payload", cfg.PayloadName, "atomic", cfg.AtomicWrite)
	return &cfg, nil
}

func (c *Config) normalize() error {
	dir, err := homedir.Expand(strings.TrimSpace(c.BaseDir))
	if err != nil {
		return fmt.Errorf("%w: base_dir: %w", ErrConfigMalformed, err)
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("%w: base_dir: %w", ErrConfigMalformed, err)
	}
	c.BaseDir = dir

	if c.PayloadName == "" {
		c.PayloadName = DefaultPayloadName
	}
	if strings.ContainsAny(c.PayloadName, `/\`) || c.PayloadName == "." || c.PayloadName == ".." {
		return fmt.Errorf("%w: payload_name %q", ErrConfigMalformed, c.PayloadName)
	}

	if c.LogDir != "" {
		logDir, err := homedir.Expand(c.LogDir)
		if err != nil {
			return fmt.Errorf("%w: log_dir: %w", ErrConfigMalformed, err)
		}
		c.LogDir = logDir
	}
	return nil
}
