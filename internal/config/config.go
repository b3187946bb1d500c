// Package config loads portls settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration accepts Go duration strings ("5s", "1m30s") in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	if parsed < 0 {
		return fmt.Errorf("line %d: negative duration %q", value.Line, s)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std converts to time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	IncludeSystem    bool     `yaml:"include_system"`
	DevOnly          bool     `yaml:"dev_only"`
	CommandTimeout   Duration `yaml:"command_timeout"`
	IconCacheSize    int      `yaml:"icon_cache_size"`
	RefreshInterval  Duration `yaml:"refresh_interval"`
	ManifestCacheTTL Duration `yaml:"manifest_cache_ttl"`
	DockerBinary     string   `yaml:"docker_binary"`
}

func Default() Config {
	return Config{
		CommandTimeout:   Duration(5 * time.Second),
		IconCacheSize:    256,
		RefreshInterval:  Duration(2 * time.Second),
		ManifestCacheTTL: Duration(30 * time.Second),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/portls/config.yaml, falling back to
// ~/.config/portls/config.yaml.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "portls", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "portls", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.CommandTimeout == 0 {
		return errors.New("command_timeout must be positive")
	}
	if c.RefreshInterval == 0 {
		return errors.New("refresh_interval must be positive")
	}
	if c.IconCacheSize < 0 {
		return errors.New("icon_cache_size must not be negative")
	}
	return nil
}
