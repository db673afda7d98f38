// Package config loads runtime settings of the hand tracking services.
//
// Settings come from YAML file first and then from environment variables prefixed with HANDS_
// (e.g. HANDS_FRAME_TIME, HANDS_MESH_ENABLED, HANDS_LOGGING_LEVEL), so environment always wins.
package config

import (
	"os"

	"github.com/LdDl/hands-go/hands"
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "HANDS_"

// Config is root configuration
type Config struct {
	// FrameTime is either "on_update" or "on_before_render"
	FrameTime string        `yaml:"frame_time" env:"FRAME_TIME"`
	Mesh      MeshConfig    `yaml:"mesh" envPrefix:"MESH_"`
	Joints    JointsConfig  `yaml:"joints" envPrefix:"JOINTS_"`
	Logging   LoggingConfig `yaml:"logging" envPrefix:"LOGGING_"`
}

// MeshConfig controls hand mesh sampling
type MeshConfig struct {
	Enabled bool `yaml:"enabled" env:"ENABLED"`
}

// JointsConfig controls joint outputs
type JointsConfig struct {
	// ArrayOutput turns on fixed-array joint output next to the joint map
	ArrayOutput bool `yaml:"array_output" env:"ARRAY_OUTPUT"`
}

// LoggingConfig is used to build zap logger
type LoggingConfig struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
}

// Default returns configuration used when nothing is provided
func Default() *Config {
	return &Config{
		FrameTime: hands.FrameTimeOnUpdate.String(),
		Mesh: MeshConfig{
			Enabled: true,
		},
		Joints: JointsConfig{
			ArrayOutput: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads YAML file at path on top of defaults and applies environment overrides.
// Empty path means defaults; a path that can not be read is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "can't read config '%s'", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "can't parse config '%s'", path)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnvOverrides() error {
	// Only variables that are set overwrite the values from YAML
	err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return errors.Wrap(err, "can't parse environment")
	}
	return nil
}

// Validate checks enumerated values
func (cfg *Config) Validate() error {
	if _, err := parseFrameTime(cfg.FrameTime); err != nil {
		return err
	}
	if _, err := parseLevel(cfg.Logging.Level); err != nil {
		return err
	}
	return nil
}

// FrameTimeToken returns timing token for device queries. Invalid value falls back to hands.FrameTimeOnUpdate
func (cfg *Config) FrameTimeToken() hands.FrameTime {
	t, err := parseFrameTime(cfg.FrameTime)
	if err != nil {
		return hands.FrameTimeOnUpdate
	}
	return t
}

// RegistryOptions translates configuration into controller registry options
func (cfg *Config) RegistryOptions() []hands.RegistryOption {
	return []hands.RegistryOption{
		hands.WithRegistryFrameTime(cfg.FrameTimeToken()),
		hands.WithMesh(cfg.Mesh.Enabled),
		hands.WithJointArray(cfg.Joints.ArrayOutput),
	}
}

func parseFrameTime(s string) (hands.FrameTime, error) {
	switch s {
	case "", hands.FrameTimeOnUpdate.String():
		return hands.FrameTimeOnUpdate, nil
	case hands.FrameTimeOnBeforeRender.String():
		return hands.FrameTimeOnBeforeRender, nil
	default:
		return hands.FrameTimeOnUpdate, errors.Errorf("unknown frame_time '%s'", s)
	}
}
