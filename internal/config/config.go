// Package config resolves settings from defaults, an optional config file,
// a .env file and STUDYBUDDY_* environment variables, in increasing order of
// precedence. CLI flags are applied on top by the caller.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"studybuddy/internal/assistant"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const EnvPrefix = "STUDYBUDDY"

type Config struct {
	DataDir   string          `mapstructure:"data_dir"`
	Backend   string          `mapstructure:"backend"`
	Theme     string          `mapstructure:"theme"` // light|dark|auto
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	Assistant AssistantConfig `mapstructure:"assistant"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text|json
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type AssistantConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	SlowAfter time.Duration `mapstructure:"slow_after"`
	ServerURL string        `mapstructure:"server_url"`
}

// HomeDir is where data and the config file live by default.
func HomeDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "_HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "config: home dir")
	}
	return filepath.Join(home, ".studybuddy"), nil
}

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("data_dir", home)
	v.SetDefault("backend", "sqlite")
	v.SetDefault("theme", "light")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("server.addr", "127.0.0.1:8787")
	v.SetDefault("assistant.base_url", "")
	v.SetDefault("assistant.model", "")
	v.SetDefault("assistant.api_key", "")
	v.SetDefault("assistant.timeout", 60*time.Second)
	v.SetDefault("assistant.slow_after", 10*time.Second)
	v.SetDefault("assistant.server_url", "http://127.0.0.1:8787")
}

// Load reads configuration. path may name a config file explicitly;
// otherwise config.{yaml,toml,json} under HomeDir is used when present.
func Load(path string) (Config, error) {
	// A missing .env is normal. Existing environment variables win.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, errors.Wrap(err, "config: load .env")
		}
	}

	home, err := HomeDir()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v, home)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "config: read %s", path)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(home)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, errors.Wrap(err, "config: read")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: decode")
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Assistant = resolveProvider(cfg.Assistant)
	return cfg, nil
}

// resolveProvider fills the credential from the provider's conventional
// variable and picks a matching endpoint and model when none is set.
func resolveProvider(a AssistantConfig) AssistantConfig {
	if a.APIKey == "" {
		if k := os.Getenv("OPENAI_API_KEY"); k != "" {
			a.APIKey = k
		} else if k := os.Getenv("GROQ_API_KEY"); k != "" {
			a.APIKey = k
			if a.BaseURL == "" {
				a.BaseURL = assistant.GroqBaseURL
			}
		}
	}
	if a.Model == "" {
		if a.BaseURL == assistant.GroqBaseURL {
			a.Model = assistant.DefaultGroqModel
		} else {
			a.Model = assistant.DefaultModel
		}
	}
	return a
}
