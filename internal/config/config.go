package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "FLIGHTMAP"

type Config struct {
	Sim      SimConfig      `mapstructure:"sim"`
	Data     DataConfig     `mapstructure:"data"`
	Database DatabaseConfig `mapstructure:"database"`
	Routing  RoutingConfig  `mapstructure:"routing"`
	Window   WindowConfig   `mapstructure:"window"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// Load reads configuration with this priority:
// 1. FLIGHTMAP_* environment variables (a .env file is honoured)
// 2. the config file (flightmap.yaml in . or ./configs when path is empty)
// 3. defaults
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("flightmap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	SetDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no file or environment is
// present.
func Default() *Config {
	v := viper.New()
	bindDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		SetDefaults(&cfg)
	}
	return &cfg
}
