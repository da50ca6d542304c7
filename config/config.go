package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/orbiter/engine"
	"github.com/lixenwraith/orbiter/parameter"
	"github.com/lixenwraith/orbiter/trail"
)

// ErrInvalidConfig marks a configuration value outside its allowed range
var ErrInvalidConfig = errors.New("config: invalid value")

// EnvPrefix prefixes environment overrides, e.g. ORBITER_TRAIL_CAPACITY
const EnvPrefix = "ORBITER"

// Config is the root configuration
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`
	Trail      TrailConfig      `mapstructure:"trail" yaml:"trail"`
	Render     RenderConfig     `mapstructure:"render" yaml:"render"`
	Audio      AudioConfig      `mapstructure:"audio" yaml:"audio"`
	System     SystemConfig     `mapstructure:"system" yaml:"system"`
	Logger     LoggerConfig     `mapstructure:"logger" yaml:"logger"`
}

// SimulationConfig holds the integration and field of view settings
type SimulationConfig struct {
	FieldWidthMeters    float64 `mapstructure:"field_width_m" yaml:"field_width_m"`
	MinFieldWidthMeters float64 `mapstructure:"min_field_width_m" yaml:"min_field_width_m"`
	TimeScale           int     `mapstructure:"time_scale" yaml:"time_scale"` // preset index
	MaxFrameDeltaMillis float64 `mapstructure:"max_frame_delta_ms" yaml:"max_frame_delta_ms"`
	MaxSubStepSeconds   float64 `mapstructure:"max_substep_s" yaml:"max_substep_s"`
	PhantomMassKg       float64 `mapstructure:"phantom_mass_kg" yaml:"phantom_mass_kg"`
	PhantomRadiusMeters float64 `mapstructure:"phantom_radius_m" yaml:"phantom_radius_m"`
}

// TrailConfig sizes the per-body path buffers
type TrailConfig struct {
	Capacity int `mapstructure:"capacity" yaml:"capacity"`
	// ThresholdPx is in terminal cells for the terminal UI
	ThresholdPx float64 `mapstructure:"threshold_px" yaml:"threshold_px"`
	// SVGThresholdPx applies to headless SVG export
	SVGThresholdPx float64 `mapstructure:"svg_threshold_px" yaml:"svg_threshold_px"`
}

type RenderConfig struct {
	FPS        int     `mapstructure:"fps" yaml:"fps"`
	CellAspect float64 `mapstructure:"cell_aspect" yaml:"cell_aspect"`
	SVGWidth   int     `mapstructure:"svg_width" yaml:"svg_width"`
	SVGHeight  int     `mapstructure:"svg_height" yaml:"svg_height"`
}

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// SystemConfig points at a JSON system definition, empty selects the built-in one
type SystemConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// LoggerConfig holds the logging configuration
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers every key so env overrides resolve during Unmarshal
func SetDefaults(v *viper.Viper) {
	// -- Simulation --
	v.SetDefault("simulation.field_width_m", parameter.DisplayWidthMeters)
	v.SetDefault("simulation.min_field_width_m", parameter.MinDisplayWidthMeters)
	v.SetDefault("simulation.time_scale", parameter.DefaultTimeScaleIndex)
	v.SetDefault("simulation.max_frame_delta_ms", parameter.MaxFrameDeltaMillis)
	v.SetDefault("simulation.max_substep_s", parameter.MaxSubStepSeconds)
	v.SetDefault("simulation.phantom_mass_kg", parameter.PhantomMassKg)
	v.SetDefault("simulation.phantom_radius_m", parameter.PhantomRadiusMeters)

	// -- Trail --
	v.SetDefault("trail.capacity", parameter.PathCapacity)
	v.SetDefault("trail.threshold_px", parameter.SignificantPathDeltaCells)
	v.SetDefault("trail.svg_threshold_px", parameter.SignificantPathDeltaPixels)

	// -- Render --
	v.SetDefault("render.fps", parameter.DefaultFPS)
	v.SetDefault("render.cell_aspect", parameter.TerminalCellAspect)
	v.SetDefault("render.svg_width", 1024)
	v.SetDefault("render.svg_height", 768)

	v.SetDefault("audio.enabled", false)
	v.SetDefault("system.file", "")

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "orbiter")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
}

// NewViper creates a viper instance with defaults, env overrides and an optional config file
// Without cfgFile, ./orbiter.{toml,yaml,json} is read when present
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("orbiter")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars
	}
	return v, nil
}

// NewConfigFromViper unmarshals and validates
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate reports every out of range value, each wrapping ErrInvalidConfig
func (c *Config) Validate() error {
	var errs []error
	positive := func(key string, val float64) {
		if !(val > 0) || math.IsInf(val, 0) {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConfig, key, val))
		}
	}

	s := c.Simulation
	positive("simulation.field_width_m", s.FieldWidthMeters)
	positive("simulation.min_field_width_m", s.MinFieldWidthMeters)
	positive("simulation.max_frame_delta_ms", s.MaxFrameDeltaMillis)
	positive("simulation.max_substep_s", s.MaxSubStepSeconds)
	positive("simulation.phantom_mass_kg", s.PhantomMassKg)
	positive("simulation.phantom_radius_m", s.PhantomRadiusMeters)
	if s.TimeScale < 0 || s.TimeScale >= len(parameter.TimeScalePresets) {
		errs = append(errs, fmt.Errorf("%w: simulation.time_scale must be in [0, %d], got %d",
			ErrInvalidConfig, len(parameter.TimeScalePresets)-1, s.TimeScale))
	}

	if !trail.IsPowerOfTwo(c.Trail.Capacity) {
		errs = append(errs, fmt.Errorf("%w: trail.capacity must be a power of two, got %d", ErrInvalidConfig, c.Trail.Capacity))
	}
	positive("trail.threshold_px", c.Trail.ThresholdPx)
	positive("trail.svg_threshold_px", c.Trail.SVGThresholdPx)

	positive("render.fps", float64(c.Render.FPS))
	positive("render.cell_aspect", c.Render.CellAspect)
	positive("render.svg_width", float64(c.Render.SVGWidth))
	positive("render.svg_height", float64(c.Render.SVGHeight))

	if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: logger.level: %v", ErrInvalidConfig, err))
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: logger.format must be console or json, got %q", ErrInvalidConfig, c.Logger.Format))
	}

	return errors.Join(errs...)
}

// EngineOptions maps the configuration onto simulation options
// thresholdPx selects the decimation threshold of the target display
func (c *Config) EngineOptions(thresholdPx float64) engine.Options {
	return engine.Options{
		PathCapacity:        c.Trail.Capacity,
		ThresholdPixels:     thresholdPx,
		TimeScaleIndex:      c.Simulation.TimeScale,
		MaxFrameDeltaMillis: c.Simulation.MaxFrameDeltaMillis,
		MaxSubStepSeconds:   c.Simulation.MaxSubStepSeconds,
		PhantomMassKg:       c.Simulation.PhantomMassKg,
		PhantomRadiusMeters: c.Simulation.PhantomRadiusMeters,
	}
}
