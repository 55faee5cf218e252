// Package config loads the application configuration from viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/finbuzz/finbuzz/internal/common"
)

// Config is the fully resolved application configuration.
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	LLM      LLMConfig
	OpenBank OpenBankConfig
	Profile  ProfileConfig
	Storage  StorageConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// LLMConfig selects and configures the language model provider.
type LLMConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	RateLimit   int
}

// OpenBankConfig configures the Open Bank Project connection. When Demo is
// true no live connection is made and canned sandbox data is served.
type OpenBankConfig struct {
	BaseURL     string
	Username    string
	Password    string
	ConsumerKey string
	Demo        bool
}

// ProfileConfig configures profile resolution.
type ProfileConfig struct {
	FetchTimeout time.Duration
}

// StorageConfig locates the on-disk state.
type StorageConfig struct {
	DataDir string
}

// SetDefaults registers default values on the global viper instance. Call
// before Load.
func SetDefaults() {
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("llm.provider", "gemini")
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.max_tokens", 2048)
	viper.SetDefault("llm.rate_limit", 0)
	viper.SetDefault("openbank.base_url", "https://apisandbox.openbankproject.com")
	viper.SetDefault("openbank.demo", false)
	viper.SetDefault("profile.fetch_timeout", "3s")
	viper.SetDefault("storage.data_dir", "~/.local/share/finbuzz")
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            viper.GetString("server.addr"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("logging.level"),
			Format: viper.GetString("logging.format"),
		},
		LLM: LLMConfig{
			Provider:    viper.GetString("llm.provider"),
			APIKey:      viper.GetString("llm.api_key"),
			Model:       viper.GetString("llm.model"),
			BaseURL:     viper.GetString("llm.base_url"),
			Temperature: viper.GetFloat64("llm.temperature"),
			MaxTokens:   viper.GetInt("llm.max_tokens"),
			RateLimit:   viper.GetInt("llm.rate_limit"),
		},
		OpenBank: OpenBankConfig{
			BaseURL:     viper.GetString("openbank.base_url"),
			Username:    viper.GetString("openbank.username"),
			Password:    viper.GetString("openbank.password"),
			ConsumerKey: viper.GetString("openbank.consumer_key"),
			Demo:        viper.GetBool("openbank.demo"),
		},
		Profile: ProfileConfig{
			FetchTimeout: viper.GetDuration("profile.fetch_timeout"),
		},
		Storage: StorageConfig{
			DataDir: ExpandPath(viper.GetString("storage.data_dir")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors that would only surface
// later at an inconvenient time.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return common.NewUserError("server address must not be empty", common.ErrInvalidConfig)
	}

	switch c.LLM.Provider {
	case "gemini", "openai", "anthropic":
	default:
		return common.NewUserError(
			fmt.Sprintf("unknown llm provider %q (expected gemini, openai, or anthropic)", c.LLM.Provider),
			common.ErrInvalidConfig)
	}
	if c.LLM.APIKey == "" {
		return common.NewUserError(
			fmt.Sprintf("llm.api_key is required for provider %q", c.LLM.Provider),
			common.ErrMissingConfig)
	}

	if !c.OpenBank.Demo {
		if c.OpenBank.Username == "" || c.OpenBank.Password == "" || c.OpenBank.ConsumerKey == "" {
			return common.NewUserError(
				"openbank credentials are required unless openbank.demo is enabled",
				common.ErrMissingConfig)
		}
	}

	if c.Storage.DataDir == "" {
		return common.NewUserError("storage.data_dir must not be empty", common.ErrInvalidConfig)
	}
	return nil
}

// DatabasePath returns the sqlite database path under the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Storage.DataDir, "finbuzz.db")
}

// ExpandPath expands a leading ~ and $VAR environment references in path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	} else if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
