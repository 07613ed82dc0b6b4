package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Host string
		Port string
	}
	Fetch struct {
		Provider string
		Timeout  time.Duration
	}
	Firecrawl struct {
		APIKey  string
		BaseURL string
	}
	LLM struct {
		Provider string
		Timeout  time.Duration
	}
	Gemini struct {
		APIKey string
		Model  string
	}
	OpenAI struct {
		APIKey string
		Model  string
	}
	History struct {
		Backend     string
		FilePath    string
		DatabaseURL string
	}
	Cache struct {
		RedisURL string
		TTL      time.Duration
	}
	RateLimit struct {
		PerMinute int
	}
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config

	// Set defaults
	viper.SetDefault("server.host", "")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("fetch.provider", "firecrawl")
	viper.SetDefault("fetch.timeout", "90s")
	viper.SetDefault("firecrawl.base_url", "https://api.firecrawl.dev")
	viper.SetDefault("llm.provider", "gemini")
	viper.SetDefault("llm.timeout", "120s")
	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("history.backend", "file")
	viper.SetDefault("history.file", "scan_history.json")
	viper.SetDefault("cache.ttl", "15m")
	viper.SetDefault("rate.limit.per.minute", 30)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	config.Server.Host = viper.GetString("server.host")
	config.Server.Port = viper.GetString("server.port")
	config.Fetch.Provider = viper.GetString("fetch.provider")
	config.Fetch.Timeout = viper.GetDuration("fetch.timeout")
	config.Firecrawl.BaseURL = viper.GetString("firecrawl.base_url")
	config.Firecrawl.APIKey = os.Getenv("FIRECRAWL_API_KEY")
	config.LLM.Provider = viper.GetString("llm.provider")
	config.LLM.Timeout = viper.GetDuration("llm.timeout")
	config.Gemini.Model = viper.GetString("gemini.model")
	config.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	config.OpenAI.Model = viper.GetString("openai.model")
	config.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	config.History.Backend = viper.GetString("history.backend")
	config.History.FilePath = viper.GetString("history.file")
	config.History.DatabaseURL = os.Getenv("DATABASE_URL")
	config.Cache.RedisURL = os.Getenv("REDIS_URL")
	config.Cache.TTL = viper.GetDuration("cache.ttl")
	config.RateLimit.PerMinute = viper.GetInt("rate.limit.per.minute")

	return &config, nil
}

// ValidateFetch reports whether the scraping side is usable as configured.
// A missing key is not fatal at startup; calls will fail until it is set.
func (c *Config) ValidateFetch() error {
	switch c.Fetch.Provider {
	case "firecrawl":
		if c.Firecrawl.APIKey == "" {
			return fmt.Errorf("FIRECRAWL_API_KEY is required")
		}
	case "direct":
		// no credentials needed
	default:
		return fmt.Errorf("unknown fetch provider: %s", c.Fetch.Provider)
	}
	return nil
}

// ValidateLLM reports whether the verdict side is usable as configured.
func (c *Config) ValidateLLM() error {
	switch c.LLM.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
	case "stub":
		// canned responses, nothing to configure
	default:
		return fmt.Errorf("unknown llm provider: %s", c.LLM.Provider)
	}
	return nil
}

// ValidateHistory checks that the persistence backend can be constructed.
func (c *Config) ValidateHistory() error {
	switch c.History.Backend {
	case "file":
		if c.History.FilePath == "" {
			return fmt.Errorf("history file path is required")
		}
	case "postgres":
		if c.History.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres history backend")
		}
	default:
		return fmt.Errorf("unknown history backend: %s", c.History.Backend)
	}
	return nil
}
