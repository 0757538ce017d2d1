// Package config provides types for handling configuration parameters.
package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config handles server-related constants and parameters.
type Config struct {
	ServerConfig      *ServerConfig
	StorageConfig     *StorageConfig
	SecretConfig      *SecretConfig
	MaintenanceConfig *MaintenanceConfig
}

// ServerConfig defines default server-related constants and parameters and overwrites them with environment variables.
type ServerConfig struct {
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`
	BaseURL       string `env:"BASE_URL" envDefault:"http://localhost:8080"`
}

// StorageConfig retrieves storage-related parameters from environment. An empty DSN selects the
// in-memory storage backend.
type StorageConfig struct {
	DatabaseDSN string `env:"DATABASE_DSN"`
}

// SecretConfig retrieves token-ciphering parameters from environment.
type SecretConfig struct {
	UserKey    string        `env:"USER_KEY" envDefault:"jds__63h3_7ds"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`
}

// MaintenanceConfig retrieves storage housekeeping parameters from environment: metrics partition
// rotation and removal of links and collections that have not been accessed within their retention
// windows.
type MaintenanceConfig struct {
	MetricsRetentionDays    int           `env:"METRICS_RETENTION_DAYS" envDefault:"90"`
	LookaheadDays           int           `env:"METRICS_LOOKAHEAD_DAYS" envDefault:"4"`
	LinkRetentionDays       int           `env:"LINK_RETENTION_DAYS" envDefault:"90"`
	CollectionRetentionDays int           `env:"COLLECTION_RETENTION_DAYS" envDefault:"30"`
	SweepInterval           time.Duration `env:"MAINTENANCE_SWEEP_INTERVAL" envDefault:"1h"`
}

// NewServerConfig sets up a server configuration.
func NewServerConfig() (*ServerConfig, error) {
	cfg := ServerConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewStorageConfig sets up a storage configuration.
func NewStorageConfig() (*StorageConfig, error) {
	cfg := StorageConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewSecretConfig sets up a secret configuration.
func NewSecretConfig() (*SecretConfig, error) {
	cfg := SecretConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewMaintenanceConfig sets up a maintenance configuration.
func NewMaintenanceConfig() (*MaintenanceConfig, error) {
	cfg := MaintenanceConfig{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewDefaultConfiguration sets up a total configuration. A .env file in the working directory is
// loaded first when present so that local overrides need no exported shell variables.
func NewDefaultConfiguration() (*Config, error) {
	_ = godotenv.Load()
	serverCfg, err := NewServerConfig()
	if err != nil {
		return nil, err
	}
	storageCfg, err := NewStorageConfig()
	if err != nil {
		return nil, err
	}
	secretCfg, err := NewSecretConfig()
	if err != nil {
		return nil, err
	}
	maintenanceCfg, err := NewMaintenanceConfig()
	if err != nil {
		return nil, err
	}
	return &Config{
		ServerConfig:      serverCfg,
		StorageConfig:     storageCfg,
		SecretConfig:      secretCfg,
		MaintenanceConfig: maintenanceCfg,
	}, nil
}

// ParseFlags parses command line arguments and stores them. Flags override environment values.
func (c *Config) ParseFlags(fs *flag.FlagSet, args []string) error {
	fs.StringVar(&c.ServerConfig.ServerAddress, "a", c.ServerConfig.ServerAddress, "Server address")
	fs.StringVar(&c.ServerConfig.BaseURL, "b", c.ServerConfig.BaseURL, "Base url")
	fs.StringVar(&c.StorageConfig.DatabaseDSN, "d", c.StorageConfig.DatabaseDSN, "PSQL data source name")
	return fs.Parse(args)
}
