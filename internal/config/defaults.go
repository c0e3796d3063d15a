package config

import "github.com/spf13/viper"

// bindDefaults registers every key with viper so AutomaticEnv can override
// keys that appear in neither the file nor the struct zero values.
func bindDefaults(v *viper.Viper) {
	v.SetDefault("sim.maxAircraft", 50)
	v.SetDefault("sim.initialAircraft", 10)
	v.SetDefault("sim.stepsPerSegment", 100)
	v.SetDefault("sim.baseSpeedMin", 0.001)
	v.SetDefault("sim.baseSpeedMax", 0.005)
	v.SetDefault("sim.speedMultiplier", 1.0)
	v.SetDefault("sim.randomizeStart", false)
	v.SetDefault("sim.seed", 0)
	v.SetDefault("sim.tickRate", 60.0)
	v.SetDefault("sim.pathCacheSize", 256)
	v.SetDefault("sim.eventLogSize", 50)
	v.SetDefault("sim.separationKm", 0.0)

	v.SetDefault("data.source", "csv")
	v.SetDefault("data.airportsCSV", "airports.csv")

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "flightmap.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "flightmap")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "flightmap")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("routing.maxLegKm", 3000.0)

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Flight Map")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxSizeMB", 32)
	v.SetDefault("log.maxBackups", 1)
	v.SetDefault("log.maxAgeDays", 14)
	v.SetDefault("log.compress", false)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.address", ":9090")
}

// SetDefaults fills zero values left after unmarshalling.
func SetDefaults(cfg *Config) {
	SetSimDefaults(&cfg.Sim)

	if cfg.Data.Source == "" {
		cfg.Data.Source = "csv"
	}
	if cfg.Data.AirportsCSV == "" {
		cfg.Data.AirportsCSV = "airports.csv"
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "flightmap.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "flightmap"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	if cfg.Routing.MaxLegKm == 0 {
		cfg.Routing.MaxLegKm = 3000
	}

	if cfg.Window.Width == 0 {
		cfg.Window.Width = 1280
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = 720
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = "Flight Map"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 32
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9090"
	}
}

// SetSimDefaults fills zero sim values. SpeedMultiplier and InitialAircraft
// are left alone since zero is meaningful for both.
func SetSimDefaults(c *SimConfig) {
	if c.MaxAircraft == 0 {
		c.MaxAircraft = 50
	}
	if c.StepsPerSegment == 0 {
		c.StepsPerSegment = 100
	}
	if c.BaseSpeedMin == 0 {
		c.BaseSpeedMin = 0.001
	}
	if c.BaseSpeedMax == 0 {
		c.BaseSpeedMax = 0.005
	}
	if c.TickRate == 0 {
		c.TickRate = 60
	}
	if c.PathCacheSize == 0 {
		c.PathCacheSize = 256
	}
	if c.EventLogSize == 0 {
		c.EventLogSize = 50
	}
}
