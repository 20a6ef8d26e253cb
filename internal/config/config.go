package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	LogDriverFile     = "file"
	LogDriverPostgres = "postgres"
	LogDriverRedis    = "redis"
)

type Config struct {
	Port                   int    `env:"PORT" envDefault:"3000"`
	LineChannelAccessToken string `env:"LINE_CHANNEL_ACCESS_TOKEN"`
	LineChannelSecret      string `env:"LINE_CHANNEL_SECRET"`
	SpecURL                string `env:"SPEC_URL" envDefault:""`
	QuoteURL               string `env:"QUOTE_URL" envDefault:""`
	CompanyProfileURL      string `env:"COMPANY_PROFILE_URL" envDefault:""`
	AdminLineUserID        string `env:"ADMIN_LINE_USER_ID" envDefault:""`
	LogLevel               string `env:"LOG_LEVEL" envDefault:"info"`
	FAQFile                string `env:"FAQ_FILE" envDefault:""`

	InteractionLogDriver   string `env:"INTERACTION_LOG_DRIVER" envDefault:"file"`
	InteractionLogFile     string `env:"INTERACTION_LOG_FILE" envDefault:"interaction_log.json"`
	InteractionLogRedisKey string `env:"INTERACTION_LOG_REDIS_KEY" envDefault:"interaction_log"`
	DatabaseURL            string `env:"DATABASE_URL"`
	RedisURL               string `env:"REDIS_URL"`

	GreetingCacheIdleHours  int `env:"GREETING_CACHE_IDLE_HOURS" envDefault:"24"`
	GreetingCacheMaxEntries int `env:"GREETING_CACHE_MAX_ENTRIES" envDefault:"10000"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) GreetingCacheIdle() time.Duration {
	return time.Duration(c.GreetingCacheIdleHours) * time.Hour
}

func (c *Config) Validate() error {
	switch c.InteractionLogDriver {
	case LogDriverFile:
		if c.InteractionLogFile == "" {
			return fmt.Errorf("INTERACTION_LOG_FILE is required when INTERACTION_LOG_DRIVER=file")
		}
	case LogDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when INTERACTION_LOG_DRIVER=postgres")
		}
	case LogDriverRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when INTERACTION_LOG_DRIVER=redis")
		}
	default:
		return fmt.Errorf("unknown INTERACTION_LOG_DRIVER %q (want file, postgres or redis)", c.InteractionLogDriver)
	}

	if c.GreetingCacheMaxEntries < 0 {
		return fmt.Errorf("GREETING_CACHE_MAX_ENTRIES must not be negative")
	}

	if c.LineChannelSecret == "" {
		log.Warn().Msg("LINE_CHANNEL_SECRET is empty: webhook signature verification disabled")
	}
	if c.LineChannelAccessToken == "" {
		log.Warn().Msg("LINE_CHANNEL_ACCESS_TOKEN is empty: replies will be rejected by LINE")
	}
	if c.CompanyProfileURL == "" {
		log.Warn().Msg("COMPANY_PROFILE_URL is empty: about requests get an apology")
	}
	if c.SpecURL == "" || c.QuoteURL == "" {
		log.Warn().Msg("SPEC_URL or QUOTE_URL is empty: links will be blank in replies")
	}

	return nil
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
