package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devConfig() *Config {
	return &Config{
		Port:          "8301",
		SessionSecret: "warbler-secret-change-in-production",
		DBPassword:    "password",
		Env:           "development",
	}
}

func TestValidateDevelopmentDefaults(t *testing.T) {
	require.NoError(t, devConfig().Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	c := devConfig()
	c.Port = ""
	assert.Error(t, c.Validate())

	c = devConfig()
	c.SessionSecret = ""
	assert.Error(t, c.Validate())
}

func TestValidateProductionStrictness(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"default session secret", func(c *Config) {}},
		{"short session secret", func(c *Config) {
			c.SessionSecret = "too-short"
		}},
		{"weak db password", func(c *Config) {
			c.SessionSecret = "a-session-secret-of-sufficient-length!"
			c.DBPassword = "password"
		}},
		{"empty db password", func(c *Config) {
			c.SessionSecret = "a-session-secret-of-sufficient-length!"
			c.DBPassword = ""
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := devConfig()
			c.Env = "production"
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	c := devConfig()
	c.Env = "production"
	c.SessionSecret = "a-session-secret-of-sufficient-length!"
	c.DBPassword = "s3cure-db-password"
	assert.NoError(t, c.Validate())
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: "prod"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
	assert.False(t, (&Config{Env: "test"}).IsProduction())
}
