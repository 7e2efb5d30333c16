package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultConfigPath = "~/.config/mailflow/config.toml"

type Config struct {
	StartMenu     bool
	Confirmations bool
	ExportDir     string
	SeedFile      string
	Layout        Layout
	DeliveryDelay time.Duration
}

func defaultConfig() Config {
	return Config{
		StartMenu:     true,
		Confirmations: true,
		Layout:        defaultLayout(),
	}
}

// loadConfig reads the TOML config at path (or the default location). A
// missing file is not an error; unset fields keep their defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		StartMenu     *bool  `toml:"start_menu"`
		Confirmations *bool  `toml:"confirmations"`
		ExportDir     string `toml:"export_dir"`
		SeedFile      string `toml:"seed_file"`
		Layout        Layout `toml:"layout"`
		Delivery      struct {
			Delay string `toml:"delay"`
		} `toml:"delivery"`
	}
	raw.Layout = cfg.Layout
	if err := toml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if raw.StartMenu != nil {
		cfg.StartMenu = *raw.StartMenu
	}
	if raw.Confirmations != nil {
		cfg.Confirmations = *raw.Confirmations
	}
	cfg.Layout = raw.Layout
	if dir := strings.TrimSpace(raw.ExportDir); dir != "" {
		if cfg.ExportDir, err = expandPath(dir); err != nil {
			return cfg, err
		}
	}
	if seed := strings.TrimSpace(raw.SeedFile); seed != "" {
		if cfg.SeedFile, err = expandPath(seed); err != nil {
			return cfg, err
		}
	}
	if delay := strings.TrimSpace(raw.Delivery.Delay); delay != "" {
		d, err := time.ParseDuration(delay)
		if err != nil {
			return cfg, fmt.Errorf("parse delivery.delay: %w", err)
		}
		cfg.DeliveryDelay = d
	}
	return cfg, nil
}

// ExportPath places filename in the configured export directory.
func (c Config) ExportPath(filename string) (string, error) {
	if c.ExportDir == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return filepath.Join(c.ExportDir, filename), nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
