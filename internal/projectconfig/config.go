// Package projectconfig provides the ProjectConfig struct and loader for
// .examboard.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultTitle = "Commit Exam Dashboard"
	DefaultData  = "data.json"

	DefaultServerHost = "127.0.0.1"
	DefaultServerPort = 8417
)

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Host      string `yaml:"host,omitempty" env:"EXAMBOARD_HOST"`
	Port      int    `yaml:"port,omitempty" env:"EXAMBOARD_PORT"`
	NoBrowser *bool  `yaml:"no_browser,omitempty" env:"EXAMBOARD_NO_BROWSER"`
}

// ProjectConfig is the top-level configuration loaded from .examboard.yaml,
// with environment overrides applied on top.
type ProjectConfig struct {
	Title  string       `yaml:"title,omitempty" env:"EXAMBOARD_TITLE"`
	Data   string       `yaml:"data,omitempty" env:"EXAMBOARD_DATA"`
	Server ServerConfig `yaml:"server,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Title: DefaultTitle,
		Data:  DefaultData,
		Server: ServerConfig{
			Host:      DefaultServerHost,
			Port:      DefaultServerPort,
			NoBrowser: boolPtr(false),
		},
	}
}

// Load finds .examboard.yaml by walking up from startDir (max 10 levels),
// unmarshals it, fills in missing fields with defaults, and applies
// EXAMBOARD_* environment overrides last. If no config file is found,
// returns defaults with a nil error. Real I/O errors (e.g. permission
// denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading .examboard.yaml: %w", err)
		}
	} else {
		var fileCfg ProjectConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing .examboard.yaml: %w", err)
		}
		mergeConfig(cfg, &fileCfg)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// findConfigFile walks up from dir looking for .examboard.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".examboard.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Title != "" {
		dst.Title = src.Title
	}
	if src.Data != "" {
		dst.Data = src.Data
	}
	if src.Server.Host != "" {
		dst.Server.Host = src.Server.Host
	}
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.NoBrowser != nil {
		dst.Server.NoBrowser = src.Server.NoBrowser
	}
}

func boolPtr(b bool) *bool {
	return &b
}
