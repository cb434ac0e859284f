package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Delete policies for students that are still referenced by a group or room.
const (
	DeletePolicyRestrict = "restrict"
	DeletePolicyCascade  = "cascade"
)

// Supported storage backends.
const (
	BackendMemory   = "memory"
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config represents the overall application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Records RecordsConfig `yaml:"records"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend                string `yaml:"backend"`
	DataDir                string `yaml:"data_dir"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// RecordsConfig holds record-keeping policy choices.
type RecordsConfig struct {
	DeletePolicy string `yaml:"delete_policy"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendJSON
	}
	switch cfg.Storage.Backend {
	case BackendMemory, BackendJSON:
	case BackendSQLite, BackendPostgres:
		if cfg.Storage.DSN == "" {
			return nil, fmt.Errorf("storage.dsn is required for backend %q", cfg.Storage.Backend)
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "./data"
	}

	if cfg.Records.DeletePolicy == "" {
		cfg.Records.DeletePolicy = DeletePolicyRestrict
	}
	if cfg.Records.DeletePolicy != DeletePolicyRestrict && cfg.Records.DeletePolicy != DeletePolicyCascade {
		return nil, fmt.Errorf("unknown delete policy %q", cfg.Records.DeletePolicy)
	}

	return &cfg, nil
}
