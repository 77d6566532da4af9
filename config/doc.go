// Package config loads pipekit configuration from YAML files and
// environment variables using viper, with optional .env support via
// godotenv.
//
// Consumers embed BaseConfig in their own config structs and call
// LoadConfig:
//
//	type AppConfig struct {
//	    config.BaseConfig `yaml:",inline" mapstructure:",squash"`
//	    Sink proc.Config `yaml:"sink" mapstructure:"sink"`
//	}
//
//	var cfg AppConfig
//	err := config.LoadConfig("recorder", &cfg)
package config
