package config

import "time"

type SimConfig struct {
	MaxAircraft     int     `mapstructure:"maxAircraft" validate:"min=1"`
	InitialAircraft int     `mapstructure:"initialAircraft" validate:"min=0,ltefield=MaxAircraft"`
	StepsPerSegment int     `mapstructure:"stepsPerSegment" validate:"min=1"`
	BaseSpeedMin    float64 `mapstructure:"baseSpeedMin" validate:"gt=0"`
	BaseSpeedMax    float64 `mapstructure:"baseSpeedMax" validate:"gtefield=BaseSpeedMin"`
	SpeedMultiplier float64 `mapstructure:"speedMultiplier" validate:"min=0"`
	RandomizeStart  bool    `mapstructure:"randomizeStart"`
	Seed            int64   `mapstructure:"seed"`
	TickRate        float64 `mapstructure:"tickRate" validate:"gt=0"`
	PathCacheSize   int     `mapstructure:"pathCacheSize" validate:"min=1"`
	EventLogSize    int     `mapstructure:"eventLogSize" validate:"min=1"`
	SeparationKm    float64 `mapstructure:"separationKm" validate:"min=0"`
}

// TickInterval is the wall-clock period between headless ticks.
func (c SimConfig) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRate)
}

type DataConfig struct {
	Source      string `mapstructure:"source" validate:"oneof=csv database"`
	AirportsCSV string `mapstructure:"airportsCSV"`
}

type RoutingConfig struct {
	MaxLegKm float64 `mapstructure:"maxLegKm" validate:"gt=0"`
}

type WindowConfig struct {
	Width  int    `mapstructure:"width" validate:"min=320"`
	Height int    `mapstructure:"height" validate:"min=240"`
	Title  string `mapstructure:"title"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address" validate:"required_if=Enabled true"`
}
