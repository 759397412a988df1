package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"algoviz/internal/anim"
)

type Config struct {
	SaveDirectory    string `yaml:"save_directory"`
	LogDir           string `yaml:"log_dir"`
	LogLevel         string `yaml:"log_level"`
	StepInterval     string `yaml:"step_interval"`
	ShowEnglish      bool   `yaml:"show_english"`
	ShowCode         bool   `yaml:"show_code"`
	VerifyReplay     bool   `yaml:"verify_replay"`
	DefaultAlgorithm string `yaml:"default_algorithm"`
}

func defaultConfig() *Config {
	return &Config{
		LogLevel:         "info",
		StepInterval:     defaultStepInterval.String(),
		ShowEnglish:      true,
		ShowCode:         false,
		DefaultAlgorithm: defaultAlgorithm,
	}
}

// loadConfig reads the YAML config at path, or ~/.algoviz.yaml when path is
// empty. A missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	homeDir, _ := os.UserHomeDir()
	if path == "" {
		if homeDir == "" {
			return config, nil
		}
		path = filepath.Join(homeDir, configFileName)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	config.SaveDirectory = expandPath(config.SaveDirectory, homeDir)
	config.LogDir = expandPath(config.LogDir, homeDir)
	if _, err := time.ParseDuration(config.StepInterval); err != nil {
		return nil, fmt.Errorf("parse config %s: step_interval: %w", path, err)
	}
	return config, nil
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// Interval is the autoplay delay between steps.
func (c *Config) Interval() time.Duration {
	d, err := time.ParseDuration(c.StepInterval)
	if err != nil || d < minStepInterval {
		return defaultStepInterval
	}
	return d
}

// Layers lists the layers visible at startup.
func (c *Config) Layers() []int {
	layers := []int{anim.LayerDefault, anim.LayerAnnotation}
	if c.ShowEnglish {
		layers = append(layers, anim.LayerEnglish)
	}
	if c.ShowCode {
		layers = append(layers, anim.LayerCode)
	}
	return layers
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger returns a JSON logger writing to a dated file under the log
// directory. The terminal belongs to the player, so without a log directory
// records are discarded.
func newLogger(c *Config) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if c.LogDir == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, opts)), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(c.LogDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	name := fmt.Sprintf("algoviz_%s.log", time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(c.LogDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(file, opts)), file, nil
}
