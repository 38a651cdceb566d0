package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"isle-sim/internal/cave"
	"isle-sim/internal/core"
	"isle-sim/internal/terrain"
)

// BuildingsConfig tunes settlement placement.
type BuildingsConfig struct {
	Count       int `yaml:"count"`
	MinSize     int `yaml:"min_size"`
	MaxAttempts int `yaml:"max_attempts"`
}

// Config holds everything needed to build a world.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`

	Terrain   terrain.Params  `yaml:"terrain"`
	Cave      cave.Params     `yaml:"cave"`
	Buildings BuildingsConfig `yaml:"buildings"`
}

// DefaultConfig returns the standard world tuning.
func DefaultConfig() Config {
	return Config{
		Width:   128,
		Height:  128,
		Seed:    1337,
		Terrain: terrain.DefaultParams(),
		Cave:    cave.DefaultParams(),
		Buildings: BuildingsConfig{
			Count:       5,
			MinSize:     8,
			MaxAttempts: 100,
		},
	}
}

// Load reads a world config from a YAML file. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports whether the configuration can produce a world.
func (c Config) Validate() error {
	if c.Width < 3 || c.Height < 3 {
		return fmt.Errorf("%w: map dimensions %dx%d too small", core.ErrInvalidConfig, c.Width, c.Height)
	}
	if err := c.Terrain.Validate(); err != nil {
		return err
	}
	if err := c.Cave.Validate(); err != nil {
		return err
	}
	if c.Buildings.Count < 0 {
		return fmt.Errorf("%w: building count %d negative", core.ErrInvalidConfig, c.Buildings.Count)
	}
	if c.Buildings.MinSize < 3 {
		return fmt.Errorf("%w: building min size %d, need at least 3", core.ErrInvalidConfig, c.Buildings.MinSize)
	}
	if c.Buildings.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts %d", core.ErrInvalidConfig, c.Buildings.MaxAttempts)
	}
	return nil
}
