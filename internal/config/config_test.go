package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8080", ShutdownTimeout: 10 * time.Second},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		LLM: LLMConfig{
			Provider: "gemini",
			APIKey:   "key",
		},
		OpenBank: OpenBankConfig{Demo: true},
		Profile:  ProfileConfig{FetchTimeout: 3 * time.Second},
		Storage:  StorageConfig{DataDir: "/tmp/finbuzz-test"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		mutate  func(*Config)
		name    string
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty addr", mutate: func(c *Config) { c.Server.Addr = "" }, wantErr: true},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "bard" }, wantErr: true},
		{name: "missing api key", mutate: func(c *Config) { c.LLM.APIKey = "" }, wantErr: true},
		{name: "empty data dir", mutate: func(c *Config) { c.Storage.DataDir = "" }, wantErr: true},
		{
			name: "live openbank without credentials",
			mutate: func(c *Config) {
				c.OpenBank.Demo = false
			},
			wantErr: true,
		},
		{
			name: "live openbank with credentials",
			mutate: func(c *Config) {
				c.OpenBank.Demo = false
				c.OpenBank.Username = "u"
				c.OpenBank.Password = "p"
				c.OpenBank.ConsumerKey = "k"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.DataDir = "/var/lib/finbuzz"

	assert.Equal(t, filepath.Join("/var/lib/finbuzz", "finbuzz.db"), cfg.DatabasePath())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("FINBUZZ_TEST_DIR", "/custom")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "absolute untouched", input: "/etc/finbuzz", want: "/etc/finbuzz"},
		{name: "bare tilde", input: "~", want: home},
		{name: "tilde prefix", input: "~/data", want: filepath.Join(home, "data")},
		{name: "env var", input: "$FINBUZZ_TEST_DIR/data", want: "/custom/data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
