// /internal/config/config.go
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken          string        `env:"DISCORD_TOKEN,required"`
	CommandPrefix         string        `env:"COMMAND_PREFIX" envDefault:"."`
	StoragePath           string        `env:"STORAGE_PATH" envDefault:"datastore.json"`
	DeveloperID           string        `env:"DEVELOPER_ID"`
	SupportURL            string        `env:"SUPPORT_URL"`
	PromptTimeout         time.Duration `env:"PROMPT_TIMEOUT" envDefault:"300s"`
	DiscordGuildBlacklist []string      `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`
}

// New loads .env when present and reads the configuration from the process
// environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}
	return parse(env.Options{})
}

// FromMap reads the configuration from the given variables only.
func FromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.CommandPrefix == "" {
		return nil, fmt.Errorf("COMMAND_PREFIX must not be empty")
	}
	if cfg.PromptTimeout <= 0 {
		return nil, fmt.Errorf("PROMPT_TIMEOUT must be positive, got %s", cfg.PromptTimeout)
	}
	return cfg, nil
}
