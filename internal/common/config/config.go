package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"*"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Telegram struct {
		// BotToken is deliberately not required: the messenger degrades to a
		// no-op without it and /health reports tokenConfigured=false.
		BotToken      string `env:"BOT_TOKEN"`
		WebhookSecret string `env:"WEBHOOK_SECRET"`
		InitDataTTL   int    `env:"INIT_DATA_TTL" envDefault:"3600"`
	}

	Loyalty struct {
		// BrandID absence is surfaced per trigger as a configuration-error
		// result, not at startup.
		BrandID     string `env:"BRAND_ID"`
		APIURL      string `env:"LOYALTY_API_URL" envDefault:"https://api.loyalteez.app"`
		InternalURL string `env:"LOYALTY_INTERNAL_URL"`

		// JoinFallbackEventID selects the unconfigured-join policy: empty means
		// refuse and prompt admin setup, non-empty is used as the fallback
		// identifier for chats with no stored join event.
		JoinFallbackEventID string `env:"JOIN_FALLBACK_EVENT_ID"`
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// .env is optional; in production the variables are set directly.
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
