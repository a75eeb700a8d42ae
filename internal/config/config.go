// Package config loads the spark-vector assigncli's configuration. None
// of this is consumed by pkg/assign itself — the matcher takes no
// configuration (spec.md §9) — this is purely the CLI's own ambient
// setup (log level/format, default file paths).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the assigncli's configuration, loadable from a YAML file,
// SPARKVECTOR_-prefixed environment variables, or defaults, in that
// precedence order (env overrides file, file overrides default).
type Config struct {
	Logger LoggerConfig `mapstructure:"logger"`
	Input  InputConfig  `mapstructure:"input"`
}

// LoggerConfig mirrors pkg/logger.Config's shape so it can be unmarshaled
// directly by viper and handed to logger.New.
type LoggerConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	Output    string `mapstructure:"output"`
	AddCaller bool   `mapstructure:"add_caller"`
}

// InputConfig names the default affinities/endpoints files assigncli
// reads when the caller doesn't override them with flags.
type InputConfig struct {
	AffinitiesPath string `mapstructure:"affinities_path"`
	EndpointsPath  string `mapstructure:"endpoints_path"`
}

// Load reads configName (without extension) from ./configs or
// /etc/sparkvector, falling back to defaults, then applies
// SPARKVECTOR_-prefixed environment overrides.
func Load(configName string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/sparkvector")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("SPARKVECTOR")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read %s: %w", configName, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.add_caller", true)

	v.SetDefault("input.affinities_path", "affinities.json")
	v.SetDefault("input.endpoints_path", "endpoints.json")
}
