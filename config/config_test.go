package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newDefaultConfig(t *testing.T) *Configuration {
	v := viper.New()
	SetupViper(v, "")
	cfg, err := New(v)
	assert.NoError(t, err)
	return cfg
}

func TestDefaultsPassValidation(t *testing.T) {
	cfg := newDefaultConfig(t)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, uint64(250), cfg.DefaultTimeoutMS)
	assert.Equal(t, "./static/taxonomy", cfg.Taxonomy.Directory)
}

func TestValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Configuration)
	}{
		{
			name:   "bad-port",
			mutate: func(cfg *Configuration) { cfg.Port = 0 },
		},
		{
			name:   "default-timeout-above-max",
			mutate: func(cfg *Configuration) { cfg.DefaultTimeoutMS = 5000 },
		},
		{
			name: "rate-limit-enabled-without-qps",
			mutate: func(cfg *Configuration) {
				cfg.RateLimit.Enabled = true
				cfg.RateLimit.MaxRequestsPerSec = 0
			},
		},
		{
			name:   "missing-inventory-dir",
			mutate: func(cfg *Configuration) { cfg.Inventory.Directory = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefaultConfig(t)
			tt.mutate(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}

func TestLimitTimeout(t *testing.T) {
	cfg := newDefaultConfig(t)

	assert.Equal(t, 250*time.Millisecond, cfg.LimitTimeout(0), "zero request should use the default")
	assert.Equal(t, 500*time.Millisecond, cfg.LimitTimeout(500*time.Millisecond))
	assert.Equal(t, 1000*time.Millisecond, cfg.LimitTimeout(30*time.Second), "requests above the max should be clamped")
}

func TestVenueInfos(t *testing.T) {
	infos := VenueInfos{
		"mall":    {Enabled: true},
		"stadium": {Enabled: false},
	}

	assert.True(t, infos.Known("mall"))
	assert.True(t, infos.Enabled("mall"))
	assert.True(t, infos.Known("stadium"))
	assert.False(t, infos.Enabled("stadium"))
	assert.False(t, infos.Known("spaceport"))
	assert.False(t, infos.Enabled("spaceport"))
}
