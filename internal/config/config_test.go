package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
include_system: true
command_timeout: 1500ms
icon_cache_size: 32
docker_binary: /opt/docker
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.IncludeSystem {
		t.Error("IncludeSystem = false")
	}
	if cfg.CommandTimeout.Std() != 1500*time.Millisecond {
		t.Errorf("CommandTimeout = %v", cfg.CommandTimeout.Std())
	}
	if cfg.IconCacheSize != 32 {
		t.Errorf("IconCacheSize = %d", cfg.IconCacheSize)
	}
	if cfg.DockerBinary != "/opt/docker" {
		t.Errorf("DockerBinary = %q", cfg.DockerBinary)
	}
	// untouched keys keep their defaults
	if cfg.RefreshInterval.Std() != 2*time.Second {
		t.Errorf("RefreshInterval = %v", cfg.RefreshInterval.Std())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "include_system: [", "parse config"},
		{"bad duration", "command_timeout: soon", "invalid duration"},
		{"negative duration", "refresh_interval: -1s", "negative duration"},
		{"zero timeout", "command_timeout: 0s", "command_timeout must be positive"},
		{"negative cache", "icon_cache_size: -3", "icon_cache_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultPath(); got != "/tmp/xdg/portls/config.yaml" {
		t.Errorf("DefaultPath() = %q", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/alice")
	if got := DefaultPath(); got != "/home/alice/.config/portls/config.yaml" {
		t.Errorf("DefaultPath() = %q", got)
	}
}
