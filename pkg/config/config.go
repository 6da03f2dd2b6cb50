// Package config loads and saves meshview's YAML settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/meshview/pkg/render"
)

// FileName is the settings file inside the meshview config directory.
const FileName = "config.yaml"

var validLevels = []string{"debug", "info", "warn", "error", "fatal"}

// Config holds all user settings. Colors are "R,G,B" strings.
type Config struct {
	FPS          int    `yaml:"fps"`
	Background   string `yaml:"background"`
	ModelColor   string `yaml:"model_color"`
	ShowGrid     bool   `yaml:"show_grid"`
	ShowAxes     bool   `yaml:"show_axes"`
	Wireframe    bool   `yaml:"wireframe"`
	CullBackface bool   `yaml:"cull_backfaces"`
	StartDir     string `yaml:"start_dir,omitempty"`
	SnapshotDir  string `yaml:"snapshot_dir,omitempty"`
	LogFile      string `yaml:"log_file,omitempty"`
	LogLevel     string `yaml:"log_level"`
}

// Flags carries command-line overrides. Zero values and nil pointers mean
// "not set", so a switch given on the command line can turn a setting back
// on as well as off.
type Flags struct {
	FPS        int
	Background string
	ModelColor string
	Wireframe  *bool
	ShowGrid   *bool
	ShowAxes   *bool
	StartDir   string
	LogFile    string
	LogLevel   string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		FPS:          60,
		Background:   "46,46,46",
		ModelColor:   "128,128,128",
		ShowGrid:     true,
		ShowAxes:     true,
		CullBackface: true,
		LogLevel:     "info",
	}
}

// Path returns the default settings file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate config dir: %w", err)
	}
	return filepath.Join(dir, "meshview", FileName), nil
}

// Load reads settings from path. A missing file yields Default(); fields
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Resolve applies command-line overrides. Flags take priority when set.
func (c *Config) Resolve(flags Flags) {
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.ModelColor != "" {
		c.ModelColor = flags.ModelColor
	}
	if flags.Wireframe != nil {
		c.Wireframe = *flags.Wireframe
	}
	if flags.ShowGrid != nil {
		c.ShowGrid = *flags.ShowGrid
	}
	if flags.ShowAxes != nil {
		c.ShowAxes = *flags.ShowAxes
	}
	if flags.StartDir != "" {
		c.StartDir = flags.StartDir
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
}

// Validate checks ranges and formats.
func (c Config) Validate() error {
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("fps %d out of range [1, 240]", c.FPS)
	}
	if _, err := render.ParseRGB(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if _, err := render.ParseRGB(c.ModelColor); err != nil {
		return fmt.Errorf("model_color: %w", err)
	}
	level := strings.ToLower(c.LogLevel)
	for _, l := range validLevels {
		if level == l {
			return nil
		}
	}
	return fmt.Errorf("log_level %q: want one of %s", c.LogLevel, strings.Join(validLevels, ", "))
}

// Colors returns the parsed background and model colors. Call Validate
// first; invalid strings yield the zero color.
func (c Config) Colors() (background, model render.Color) {
	background, _ = render.ParseRGB(c.Background)
	model, _ = render.ParseRGB(c.ModelColor)
	return background, model
}

// StartDirectory returns the directory the file picker opens in: StartDir
// when set, otherwise the working directory.
func (c Config) StartDirectory() string {
	if c.StartDir != "" {
		return expandHome(c.StartDir)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// SnapshotPath returns where a snapshot named name is written.
func (c Config) SnapshotPath(name string) string {
	if c.SnapshotDir == "" {
		return name
	}
	return filepath.Join(expandHome(c.SnapshotDir), name)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
