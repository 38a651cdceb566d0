package terrain

import (
	"fmt"

	"isle-sim/internal/core"
)

// Params holds the tunables for island heightmap synthesis.
type Params struct {
	// Fractal noise shape.
	Octaves     int     `yaml:"octaves"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Persistence float64 `yaml:"persistence"`
	Scale       float64 `yaml:"scale"`

	// Radial hills layered by AddFeatures.
	HillCountMin  int     `yaml:"hill_count_min"`
	HillCountMax  int     `yaml:"hill_count_max"`
	HillRadiusMin float64 `yaml:"hill_radius_min"`
	HillRadiusMax float64 `yaml:"hill_radius_max"`
	HillHeightMin float64 `yaml:"hill_height_min"`
	HillHeightMax float64 `yaml:"hill_height_max"`

	// Hydraulic erosion droplets.
	DropletsMin   int     `yaml:"droplets_min"`
	DropletsMax   int     `yaml:"droplets_max"`
	DropletSteps  int     `yaml:"droplet_steps"`
	ErosionFactor float64 `yaml:"erosion_factor"`
	DepositFactor float64 `yaml:"deposit_factor"`
}

// DefaultParams returns the standard island tuning.
func DefaultParams() Params {
	return Params{
		Octaves:       6,
		Lacunarity:    2.5,
		Persistence:   0.5,
		Scale:         4.0,
		HillCountMin:  10,
		HillCountMax:  20,
		HillRadiusMin: 5,
		HillRadiusMax: 15,
		HillHeightMin: 0.2,
		HillHeightMax: 0.4,
		DropletsMin:   8000,
		DropletsMax:   12000,
		DropletSteps:  30,
		ErosionFactor: 0.05,
		DepositFactor: 0.05,
	}
}

// Validate reports whether the parameter set can produce a terrain.
func (p Params) Validate() error {
	if p.Octaves < 1 {
		return fmt.Errorf("%w: octaves must be at least 1, got %d", core.ErrInvalidConfig, p.Octaves)
	}
	if p.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %g", core.ErrInvalidConfig, p.Scale)
	}
	if p.HillCountMax < p.HillCountMin {
		return fmt.Errorf("%w: hill count range [%d,%d] is inverted", core.ErrInvalidConfig, p.HillCountMin, p.HillCountMax)
	}
	if p.HillRadiusMin <= 0 || p.HillRadiusMax < p.HillRadiusMin {
		return fmt.Errorf("%w: hill radius range [%g,%g]", core.ErrInvalidConfig, p.HillRadiusMin, p.HillRadiusMax)
	}
	if p.DropletsMax < p.DropletsMin || p.DropletsMin < 0 {
		return fmt.Errorf("%w: droplet range [%d,%d]", core.ErrInvalidConfig, p.DropletsMin, p.DropletsMax)
	}
	return nil
}
