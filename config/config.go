package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration is the top-level config for the exchange. Values come from
// the config file and SFX_* environment variables, with defaults from
// SetupViper.
type Configuration struct {
	ExternalURL string `mapstructure:"external_url"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	AdminPort   int    `mapstructure:"admin_port"`

	// DefaultTimeoutMS is applied when a bid request carries no tmax.
	// MaxTimeoutMS caps tmax regardless of what the requester asks for.
	DefaultTimeoutMS uint64 `mapstructure:"default_timeout_ms"`
	MaxTimeoutMS     uint64 `mapstructure:"max_timeout_ms"`

	EnableGzip bool      `mapstructure:"enable_gzip"`
	RateLimit  RateLimit `mapstructure:"rate_limit"`

	Inventory      Inventory      `mapstructure:"inventory"`
	Taxonomy       Taxonomy       `mapstructure:"taxonomy"`
	StoredRequests StoredRequests `mapstructure:"stored_requests"`
	VenueParams    VenueParams    `mapstructure:"venue_params"`
	VenueInfo      VenueInfo      `mapstructure:"venue_info"`
	VenueCache     VenueCache     `mapstructure:"venue_cache"`
	Metrics        Metrics        `mapstructure:"metrics"`
}

// RateLimit bounds request throughput on the exchange endpoints.
type RateLimit struct {
	Enabled           bool    `mapstructure:"enabled"`
	MaxRequestsPerSec float64 `mapstructure:"max_requests_per_second"`
}

// Inventory locates the read-only screen inventory source.
type Inventory struct {
	Directory string `mapstructure:"directory"`
}

// Taxonomy locates the versioned venue taxonomy asset.
type Taxonomy struct {
	Directory string `mapstructure:"directory"`
}

// StoredRequests locates the account-level stored request defaults.
type StoredRequests struct {
	Directory string `mapstructure:"directory"`
}

// VenueParams locates the JSON schemas used to validate venue filter params.
type VenueParams struct {
	SchemaDirectory string `mapstructure:"schema_directory"`
}

// VenueInfo locates the venue-type info yaml asset.
type VenueInfo struct {
	File string `mapstructure:"file"`
}

// VenueCache sizes the in-process cache of converted venues. A size of 0
// disables the cache; conversion is pure, so this only affects latency.
type VenueCache struct {
	SizeBytes  int `mapstructure:"size_bytes"`
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

type Metrics struct {
	// IntervalSeconds controls how often go-metrics snapshots are logged.
	// 0 disables the periodic log.
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

// New validates the viper config and returns it as a Configuration.
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("viper failed to unmarshal app config: %v", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (cfg *Configuration) validate() error {
	if cfg.Port <= 0 {
		return fmt.Errorf("cfg.port must be positive. Got %d", cfg.Port)
	}
	if cfg.AdminPort <= 0 {
		return fmt.Errorf("cfg.admin_port must be positive. Got %d", cfg.AdminPort)
	}
	if cfg.MaxTimeoutMS > 0 && cfg.DefaultTimeoutMS > cfg.MaxTimeoutMS {
		return fmt.Errorf("cfg.default_timeout_ms (%d) must not exceed cfg.max_timeout_ms (%d)", cfg.DefaultTimeoutMS, cfg.MaxTimeoutMS)
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.MaxRequestsPerSec <= 0 {
		return fmt.Errorf("cfg.rate_limit.max_requests_per_second must be positive when rate limiting is enabled. Got %f", cfg.RateLimit.MaxRequestsPerSec)
	}
	if cfg.Inventory.Directory == "" {
		return fmt.Errorf("cfg.inventory.directory is required")
	}
	if cfg.Taxonomy.Directory == "" {
		return fmt.Errorf("cfg.taxonomy.directory is required")
	}
	return nil
}

// DefaultTimeout returns the deadline to apply when a request has no tmax.
func (cfg *Configuration) DefaultTimeout() time.Duration {
	return time.Duration(cfg.DefaultTimeoutMS) * time.Millisecond
}

// LimitTimeout clamps a requested timeout to the configured maximum. A zero
// requested value falls back to the default.
func (cfg *Configuration) LimitTimeout(requested time.Duration) time.Duration {
	if requested <= 0 {
		requested = cfg.DefaultTimeout()
	}
	if max := time.Duration(cfg.MaxTimeoutMS) * time.Millisecond; max > 0 && requested > max {
		return max
	}
	return requested
}

// SetupViper sets the default config values and wires env var overrides.
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/config")
	}

	v.SetDefault("external_url", "http://localhost:8000")
	v.SetDefault("host", "")
	v.SetDefault("port", 8000)
	v.SetDefault("admin_port", 6060)
	v.SetDefault("default_timeout_ms", 250)
	v.SetDefault("max_timeout_ms", 1000)
	v.SetDefault("enable_gzip", false)
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.max_requests_per_second", 100)
	v.SetDefault("inventory.directory", "./static/inventory")
	v.SetDefault("taxonomy.directory", "./static/taxonomy")
	v.SetDefault("stored_requests.directory", "./static/stored-requests")
	v.SetDefault("venue_params.schema_directory", "./static/venue-params")
	v.SetDefault("venue_info.file", "./static/venue-info.yaml")
	v.SetDefault("venue_cache.size_bytes", 10*1024*1024)
	v.SetDefault("venue_cache.ttl_seconds", 300)
	v.SetDefault("metrics.interval_seconds", 0)

	v.SetEnvPrefix("SFX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.ReadInConfig()
}
