package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/voxelsplace/voxland/codec"
	"github.com/voxelsplace/voxland/store"
	"github.com/voxelsplace/voxland/voxel"
)

// EnvPath names the variable Load falls back to when no path is given.
const EnvPath = "VOXLAND_CONFIG"

type Config struct {
	// Palette holds "#rrggbb[aa]" colors, one per height band. Empty means
	// voxel.DefaultPalette.
	Palette         []string   `yaml:"palette"`
	MaxColumnHeight int        `yaml:"max_column_height"`
	LandPath        string     `yaml:"land_path"`
	Save            SaveConfig `yaml:"save"`
}

type SaveConfig struct {
	Backend     string `yaml:"backend"`
	Path        string `yaml:"path"`
	Slot        string `yaml:"slot"`
	Compression string `yaml:"compression"`
}

// Default loads land.txt and saves my_map.dat in the working directory.
func Default() *Config {
	return &Config{
		MaxColumnHeight: voxel.DefaultMaxColumnHeight,
		LandPath:        "land.txt",
		Save: SaveConfig{
			Backend:     store.BackendDir,
			Path:        ".",
			Slot:        "my_map.dat",
			Compression: "zstd",
		},
	}
}

// Load reads a YAML file over Default. An empty path falls back to
// $VOXLAND_CONFIG; if that is unset too, Default is returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return cfg, nil
		}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.ColorPalette(); err != nil {
		return err
	}
	if c.MaxColumnHeight < 0 {
		return fmt.Errorf("max_column_height must be >= 0, got %d", c.MaxColumnHeight)
	}
	switch c.Save.Backend {
	case store.BackendDir, store.BackendBadger, store.BackendSQLite:
	default:
		return fmt.Errorf("unknown save backend %q", c.Save.Backend)
	}
	if c.Save.Slot == "" {
		return fmt.Errorf("save slot is empty")
	}
	if _, err := c.SaveCompression(); err != nil {
		return err
	}
	return nil
}

// ColorPalette parses Palette.
func (c *Config) ColorPalette() (voxel.Palette, error) {
	if len(c.Palette) == 0 {
		return voxel.DefaultPalette, nil
	}
	p := make(voxel.Palette, 0, len(c.Palette))
	for _, h := range c.Palette {
		col, err := voxel.ParseHexColor(h)
		if err != nil {
			return nil, err
		}
		p = append(p, col)
	}
	return p, nil
}

func (c *Config) SaveCompression() (codec.Compression, error) {
	return codec.ParseCompression(c.Save.Compression)
}
