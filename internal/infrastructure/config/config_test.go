package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProviderConfigured(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		expected bool
	}{
		{"未設定", "", false},
		{"只有空白", "   ", false},
		{"過短的金鑰", "short", false},
		{"恰好最小長度", "0123456789", true},
		{"正常金鑰", "sk-abcdef0123456789", true},
		{"前後空白不計入長度", "  short  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ProviderConfig{APIKey: tt.apiKey}
			assert.Equal(t, tt.expected, p.Configured())
		})
	}
}

func TestValidateConfig(t *testing.T) {
	valid := &Config{
		Server: ServerConfig{Port: 8080},
		Search: SearchConfig{MaxResults: 15},
		Cache: CacheConfig{
			Enabled:         true,
			MaxSize:         100,
			TTL:             time.Hour,
			CleanupInterval: time.Minute,
		},
	}
	assert.NoError(t, validateConfig(valid))

	noPort := *valid
	noPort.Server.Port = 0
	assert.Error(t, validateConfig(&noPort))

	tooMany := *valid
	tooMany.Search.MaxResults = 50
	assert.Error(t, validateConfig(&tooMany))

	badCache := *valid
	badCache.Cache.TTL = 0
	assert.Error(t, validateConfig(&badCache))
}
