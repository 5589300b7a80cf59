package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/runebot/internal/config"
	"github.com/joho/godotenv"
)

type envConfig struct {
	Env                      string  `env:"ENV" envDefault:"production"`
	DebugMode                bool    `env:"DEBUG_MODE" envDefault:"false"`
	DiscordToken             string  `env:"DISCORD_TOKEN,required"`
	DiscordGuildID           string  `env:"DISCORD_GUILD_ID"`
	CommandPrefix            string  `env:"BOT_PREFIX" envDefault:"."`
	BotStatus                string  `env:"BOT_STATUS" envDefault:"Use /help for commands"`
	MaxTokens                int     `env:"MAX_TOKENS" envDefault:"150"`
	GenerationTemperature    float64 `env:"GENERATION_TEMPERATURE" envDefault:"0.7"`
	GenerationTimeoutSec     int     `env:"GENERATION_TIMEOUT_SEC" envDefault:"120"`
	ModelName                string  `env:"MODEL_NAME" envDefault:"Phi-3-mini-128k-instruct.Q4_0.gguf"`
	ModelEndpoint            string  `env:"MODEL_ENDPOINT" envDefault:"http://localhost:4891/v1"`
	RestartDelaySec          int     `env:"RESTART_DELAY" envDefault:"5"`
	CommandCooldownSec       int     `env:"COMMAND_COOLDOWN" envDefault:"3"`
	TriviaTimeoutSec         int     `env:"TRIVIA_TIMEOUT" envDefault:"60"`
	ReminderSweepIntervalSec int     `env:"REMINDER_SWEEP_INTERVAL_SEC" envDefault:"30"`
	FetchTimeoutSec          int     `env:"FETCH_TIMEOUT_SEC" envDefault:"5"`
	Timezone                 string  `env:"TIMEZONE" envDefault:"Local"`
	DatabaseURL              string  `env:"DATABASE_URL"`
}

// Load reads an optional .env file from the working directory, then the
// process environment, which wins over the file.
func Load() (*internalconfig.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	} else if err != nil {
		slog.Debug("no .env file found, using process environment only")
	}

	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                      raw.Env,
		DebugMode:                raw.DebugMode,
		DiscordToken:             raw.DiscordToken,
		DiscordGuildID:           raw.DiscordGuildID,
		CommandPrefix:            raw.CommandPrefix,
		BotStatus:                raw.BotStatus,
		MaxTokens:                raw.MaxTokens,
		GenerationTemperature:    raw.GenerationTemperature,
		GenerationTimeoutSec:     raw.GenerationTimeoutSec,
		ModelName:                raw.ModelName,
		ModelEndpoint:            raw.ModelEndpoint,
		RestartDelaySec:          raw.RestartDelaySec,
		CommandCooldownSec:       raw.CommandCooldownSec,
		TriviaTimeoutSec:         raw.TriviaTimeoutSec,
		ReminderSweepIntervalSec: raw.ReminderSweepIntervalSec,
		FetchTimeoutSec:          raw.FetchTimeoutSec,
		Timezone:                 raw.Timezone,
		DatabaseURL:              raw.DatabaseURL,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
