package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, "qwen2.5:3b", cfg.Model)
	assert.Equal(t, 8000, cfg.MaxContentLength)
	assert.Equal(t, 3, cfg.MinKeyPoints)
	assert.False(t, cfg.Verbatim)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://custom:8080/v1"),
			WithModel("gpt-4o-mini"),
			WithMaxContentLength(4000),
			WithMinKeyPoints(2),
			WithVerbatim(true),
		)

		assert.Equal(t, "http://custom:8080/v1", cfg.Host)
		assert.Equal(t, "gpt-4o-mini", cfg.Model)
		assert.Equal(t, 4000, cfg.MaxContentLength)
		assert.Equal(t, 2, cfg.MinKeyPoints)
		assert.True(t, cfg.Verbatim)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected string
	}{
		{name: "already has v1", host: "http://localhost:11434/v1", expected: "http://localhost:11434/v1"},
		{name: "missing v1", host: "http://localhost:11434", expected: "http://localhost:11434/v1"},
		{name: "has trailing slash", host: "http://localhost:11434/", expected: "http://localhost:11434/v1"},
		{name: "empty host", host: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Host: tt.host}

			cfg.Normalize()

			assert.Equal(t, tt.expected, cfg.Host)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Host:             "http://localhost:11434",
			Model:            "qwen2.5:3b",
			MaxContentLength: 8000,
			MinKeyPoints:     3,
		}
	}

	t.Run("valid config", func(t *testing.T) {
		cfg := valid()

		require.NoError(t, cfg.Validate())
		// Should also normalize
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "missing host", mutate: func(c *Config) { c.Host = "" }, field: "Host"},
		{name: "missing model", mutate: func(c *Config) { c.Model = "" }, field: "Model"},
		{name: "zero content length", mutate: func(c *Config) { c.MaxContentLength = 0 }, field: "MaxContentLength"},
		{name: "negative key points", mutate: func(c *Config) { c.MinKeyPoints = -1 }, field: "MinKeyPoints"},
		{name: "too many key points", mutate: func(c *Config) { c.MinKeyPoints = 7 }, field: "MinKeyPoints"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	t.Run("key points at boundaries", func(t *testing.T) {
		cfg := valid()
		cfg.MinKeyPoints = 0
		assert.NoError(t, cfg.Validate())

		cfg.MinKeyPoints = MaxKeyPoints
		assert.NoError(t, cfg.Validate())
	})
}
