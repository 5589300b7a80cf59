package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env                      string
	DebugMode                bool
	DiscordToken             string
	DiscordGuildID           string
	CommandPrefix            string
	BotStatus                string
	MaxTokens                int
	GenerationTemperature    float64
	GenerationTimeoutSec     int
	ModelName                string
	ModelEndpoint            string
	RestartDelaySec          int
	CommandCooldownSec       int
	TriviaTimeoutSec         int
	ReminderSweepIntervalSec int
	FetchTimeoutSec          int
	Timezone                 string
	DatabaseURL              string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	for _, p := range c.positiveFieldChecks() {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.name, p.value)
		}
	}
	if c.RestartDelaySec < 0 {
		return fmt.Errorf("RESTART_DELAY must not be negative, got %d", c.RestartDelaySec)
	}
	if c.CommandCooldownSec < 0 {
		return fmt.Errorf("COMMAND_COOLDOWN must not be negative, got %d", c.CommandCooldownSec)
	}
	if c.GenerationTemperature < 0 || c.GenerationTemperature > 2 {
		return fmt.Errorf("GENERATION_TEMPERATURE must be within [0, 2], got %v", c.GenerationTemperature)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "DISCORD_TOKEN", value: c.DiscordToken},
		{name: "BOT_PREFIX", value: c.CommandPrefix},
		{name: "MODEL_NAME", value: c.ModelName},
		{name: "MODEL_ENDPOINT", value: c.ModelEndpoint},
		{name: "TIMEZONE", value: c.Timezone},
	}
}

type positiveEnvField struct {
	name  string
	value int
}

func (c *Config) positiveFieldChecks() []positiveEnvField {
	return []positiveEnvField{
		{name: "MAX_TOKENS", value: c.MaxTokens},
		{name: "GENERATION_TIMEOUT_SEC", value: c.GenerationTimeoutSec},
		{name: "TRIVIA_TIMEOUT", value: c.TriviaTimeoutSec},
		{name: "REMINDER_SWEEP_INTERVAL_SEC", value: c.ReminderSweepIntervalSec},
		{name: "FETCH_TIMEOUT_SEC", value: c.FetchTimeoutSec},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) TriviaTimeout() time.Duration {
	return time.Duration(c.TriviaTimeoutSec) * time.Second
}

func (c *Config) ReminderSweepInterval() time.Duration {
	return time.Duration(c.ReminderSweepIntervalSec) * time.Second
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

func (c *Config) GenerationTimeout() time.Duration {
	return time.Duration(c.GenerationTimeoutSec) * time.Second
}

func (c *Config) RestartDelay() time.Duration {
	return time.Duration(c.RestartDelaySec) * time.Second
}

func (c *Config) CommandCooldown() time.Duration {
	return time.Duration(c.CommandCooldownSec) * time.Second
}
