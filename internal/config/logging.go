package config

type LogConfig struct {
	// debug, info, warn, error
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`

	// json or text
	Format string `mapstructure:"format" validate:"oneof=json text"`

	// empty means stderr
	File string `mapstructure:"file"`

	MaxSizeMB  int  `mapstructure:"maxSizeMB" validate:"min=1"`
	MaxBackups int  `mapstructure:"maxBackups" validate:"min=0"`
	MaxAgeDays int  `mapstructure:"maxAgeDays" validate:"min=0"`
	Compress   bool `mapstructure:"compress"`
}
