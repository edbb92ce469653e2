package app

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// SessionDir is where chunk logs and session manifests are kept by
	// the external engine; the replay command reads logs from here when
	// given a bare session name.
	SessionDir string `yaml:"session_dir"`
	LogFile    string `yaml:"log_file"`

	// BufferLimit bounds how many chunks a detached background session
	// retains for reattach replay.
	BufferLimit int `yaml:"buffer_limit"`

	// Rendering thresholds; zero values fall back to engine defaults.
	ProgressWindow int `yaml:"progress_window"`
	DiffCollapse   int `yaml:"diff_collapse"`
	OutputCollapse int `yaml:"output_collapse"`

	Theme string `yaml:"theme"`
}

func DefaultConfig() Config {
	return Config{
		BufferLimit:    10000,
		ProgressWindow: 10,
		DiffCollapse:   25,
		OutputCollapse: 8,
		Theme:          "dark",
	}
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "codeterm", "config.yaml")
}

func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.BufferLimit <= 0 {
		cfg.BufferLimit = 10000
	}
	if cfg.ProgressWindow <= 0 {
		cfg.ProgressWindow = 10
	}
	if cfg.DiffCollapse <= 0 {
		cfg.DiffCollapse = 25
	}
	if cfg.OutputCollapse <= 0 {
		cfg.OutputCollapse = 8
	}
	if cfg.Theme == "" {
		cfg.Theme = "dark"
	}
	return cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
