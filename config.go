package orrery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigEnv is the environment variable pointing to the directory holding conf.toml.
const ConfigEnv = "ORRERY_CONFIG"

// AdaptiveConfig parametrises the adaptive tessellation.
type AdaptiveConfig struct {
	Base, Max                 int
	EccThreshold, EccWeight   float64
	AxisThreshold, AxisWeight float64
	MidpointThreshold         float64
}

// Config is the kernel configuration.
type Config struct {
	Scaling        Scaling
	PlanetSegments int
	Adaptive       AdaptiveConfig
	OrbitCapacity  int
	NEOOrbitColor  Color
	OutputDir      string
	CatalogPath    string
}

var configDefaults = map[string]interface{}{
	"scale.distance":                      DefaultDistanceScale,
	"scale.planet_size":                   DefaultPlanetSizeScale,
	"tessellation.planet_segments":        DefaultPlanetSegments,
	"tessellation.base_segments":          DefaultBaseSegments,
	"tessellation.max_segments":           DefaultMaxSegments,
	"tessellation.eccentricity_threshold": DefaultEccentricityThreshold,
	"tessellation.eccentricity_weight":    DefaultEccentricityWeight,
	"tessellation.axis_threshold":         DefaultAxisThreshold,
	"tessellation.axis_weight":            DefaultAxisWeight,
	"tessellation.midpoint_threshold":     DefaultMidpointThreshold,
	"orbit.capacity":                      DefaultOrbitCapacity,
	"orbit.neo_color":                     DefaultNEOOrbitColor.String(),
	"general.output_path":                 defaultOutputDir,
	"general.catalog":                     "",
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range configDefaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("ORRERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

const defaultOutputDir = "."

// DefaultConfig returns the compiled-in configuration. Environment
// variables are only read by LoadConfig and ConfigFromEnv.
func DefaultConfig() Config {
	return Config{
		Scaling:        DefaultScaling(),
		PlanetSegments: DefaultPlanetSegments,
		Adaptive: AdaptiveConfig{
			Base:              DefaultBaseSegments,
			Max:               DefaultMaxSegments,
			EccThreshold:      DefaultEccentricityThreshold,
			EccWeight:         DefaultEccentricityWeight,
			AxisThreshold:     DefaultAxisThreshold,
			AxisWeight:        DefaultAxisWeight,
			MidpointThreshold: DefaultMidpointThreshold,
		},
		OrbitCapacity: DefaultOrbitCapacity,
		NEOOrbitColor: DefaultNEOOrbitColor,
		OutputDir:     defaultOutputDir,
	}
}

// LoadConfig reads the configuration file at path (TOML, YAML or JSON).
// Environment variables prefixed ORRERY_ override file values.
func LoadConfig(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return configFromViper(v)
}

// ConfigFromEnv loads conf.toml from the directory named by ORRERY_CONFIG, or
// returns the defaults if the variable is empty.
func ConfigFromEnv() (Config, error) {
	confPath := os.Getenv(ConfigEnv)
	if confPath == "" {
		return configFromViper(newViper())
	}
	return LoadConfig(filepath.Join(confPath, "conf.toml"))
}

func configFromViper(v *viper.Viper) (Config, error) {
	color, err := ParseColor(v.GetString("orbit.neo_color"))
	if err != nil {
		return Config{}, fmt.Errorf("orbit.neo_color: %w", err)
	}
	cfg := Config{
		Scaling: Scaling{
			Distance:   v.GetFloat64("scale.distance"),
			PlanetSize: v.GetFloat64("scale.planet_size"),
		},
		PlanetSegments: v.GetInt("tessellation.planet_segments"),
		Adaptive: AdaptiveConfig{
			Base:              v.GetInt("tessellation.base_segments"),
			Max:               v.GetInt("tessellation.max_segments"),
			EccThreshold:      v.GetFloat64("tessellation.eccentricity_threshold"),
			EccWeight:         v.GetFloat64("tessellation.eccentricity_weight"),
			AxisThreshold:     v.GetFloat64("tessellation.axis_threshold"),
			AxisWeight:        v.GetFloat64("tessellation.axis_weight"),
			MidpointThreshold: v.GetFloat64("tessellation.midpoint_threshold"),
		},
		OrbitCapacity: v.GetInt("orbit.capacity"),
		NEOOrbitColor: color,
		OutputDir:     v.GetString("general.output_path"),
		CatalogPath:   v.GetString("general.catalog"),
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	var errs []error
	if c.Scaling.Distance <= 0 {
		errs = append(errs, fmt.Errorf("scale.distance=%g must be positive", c.Scaling.Distance))
	}
	if c.Scaling.PlanetSize <= 0 {
		errs = append(errs, fmt.Errorf("scale.planet_size=%g must be positive", c.Scaling.PlanetSize))
	}
	if c.PlanetSegments < 1 {
		errs = append(errs, fmt.Errorf("tessellation.planet_segments=%d must be at least 1", c.PlanetSegments))
	}
	if c.Adaptive.Base < 1 || c.Adaptive.Max < c.Adaptive.Base {
		errs = append(errs, fmt.Errorf("tessellation segments base=%d max=%d invalid", c.Adaptive.Base, c.Adaptive.Max))
	}
	for _, p := range []struct {
		key string
		val float64
	}{
		{"tessellation.eccentricity_threshold", c.Adaptive.EccThreshold},
		{"tessellation.axis_threshold", c.Adaptive.AxisThreshold},
		{"tessellation.midpoint_threshold", c.Adaptive.MidpointThreshold},
	} {
		if !(p.val > 0) {
			errs = append(errs, fmt.Errorf("%s=%g must be positive", p.key, p.val))
		}
	}
	if c.Adaptive.EccWeight < 0 || c.Adaptive.AxisWeight < 0 {
		errs = append(errs, fmt.Errorf("tessellation weights eccentricity=%g axis=%g must not be negative", c.Adaptive.EccWeight, c.Adaptive.AxisWeight))
	}
	if c.OrbitCapacity < 1 {
		errs = append(errs, fmt.Errorf("orbit.capacity=%d must be at least 1", c.OrbitCapacity))
	}
	return errors.Join(errs...)
}

// Policies returns the tessellation strategies described by this configuration.
func (c Config) Policies(p Propagator) TessellationPolicies {
	adaptive := AdaptiveTessellation{
		Base:              c.Adaptive.Base,
		Max:               c.Adaptive.Max,
		EccThreshold:      c.Adaptive.EccThreshold,
		EccWeight:         c.Adaptive.EccWeight,
		AxisThreshold:     c.Adaptive.AxisThreshold,
		AxisWeight:        c.Adaptive.AxisWeight,
		MidpointThreshold: c.Adaptive.MidpointThreshold,
		Propagator:        p,
	}
	return TessellationPolicies{
		ClassSun:    adaptive,
		ClassPlanet: FixedTessellation{Segments: c.PlanetSegments, Scale: p.Scaling()},
		ClassNEO:    adaptive,
	}
}
