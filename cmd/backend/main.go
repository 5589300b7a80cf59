package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	configloader "github.com/foxseedlab/runebot/external/config"
	contentimpl "github.com/foxseedlab/runebot/external/content"
	"github.com/foxseedlab/runebot/external/discord"
	journalimpl "github.com/foxseedlab/runebot/external/journal"
	"github.com/foxseedlab/runebot/external/llm"
	"github.com/foxseedlab/runebot/internal/bot"
	"github.com/foxseedlab/runebot/internal/config"
	discordpkg "github.com/foxseedlab/runebot/internal/discord"
	"github.com/foxseedlab/runebot/internal/generation"
	"github.com/foxseedlab/runebot/internal/journal"
	"github.com/foxseedlab/runebot/internal/ledger"
	"github.com/foxseedlab/runebot/internal/reminder"
	"github.com/foxseedlab/runebot/internal/supervisor"
	"github.com/foxseedlab/runebot/internal/trivia"
	"github.com/samber/do/v2"
)

const discordConnectTimeout = 20 * time.Second

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "timezone", cfg.Timezone)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("startup: launching discord bot")
	runBot(ctx, cfg, injector)
	slog.Info("shutdown complete")
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() || cfg.DebugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	journalimpl.RegisterDI(injector)
	contentimpl.RegisterDI(injector)
	llm.RegisterDI(injector)
	discord.RegisterDI(injector)
	ledger.RegisterDI(injector)
	trivia.RegisterDI(injector)
	generation.RegisterDI(injector)
	bot.RegisterDI(injector)
	reminder.RegisterDI(injector)

	return injector
}

func mustInvoke[T any](injector do.Injector, name string) T {
	v, err := do.Invoke[T](injector)
	if err != nil {
		slog.Error("failed to resolve "+name, "error", err)
		os.Exit(1)
	}
	return v
}

func runBot(ctx context.Context, cfg *config.Config, injector do.Injector) {
	dc := mustInvoke[discordpkg.Client](injector, "discord client")
	handler := mustInvoke[*bot.Handler](injector, "bot handler")
	runner := mustInvoke[*reminder.Runner](injector, "reminder runner")
	rec := mustInvoke[journal.Recorder](injector, "activity journal")
	defer rec.Close()

	handler.Register(dc)

	if err := runner.Start(ctx); err != nil {
		slog.Error("failed to start reminder runner", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := runner.Stop(); err != nil {
			slog.Error("reminder runner stop failed", "error", err)
		}
	}()

	restarts := supervisor.Run(ctx, cfg.RestartDelay(), func(ctx context.Context) error {
		return runSession(ctx, cfg, dc)
	})

	if err := dc.Close(); err != nil {
		slog.Error("discord close failed", "error", err)
	}
	slog.Info("shutting down", "restarts", restarts)
}

// runSession connects, publishes the commands and blocks until ctx is done.
func runSession(ctx context.Context, cfg *config.Config, dc discordpkg.Client) error {
	connectCtx, cancel := context.WithTimeout(ctx, discordConnectTimeout)
	defer cancel()

	slog.Info("startup: connecting to discord gateway")
	if err := dc.Connect(connectCtx); err != nil {
		return fmt.Errorf("discord connect failed: %w", err)
	}
	me, err := dc.BotUser()
	if err != nil {
		return fmt.Errorf("failed to resolve bot user: %w", err)
	}
	slog.Info("startup: discord connected", "bot_user_id", me.ID, "bot_name", me.Name())

	defs := bot.SlashCommandDefinitions()
	if err := dc.RegisterSlashCommands(cfg.DiscordGuildID, defs); err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}
	slog.Info("slash commands registered", "guild_id", cfg.DiscordGuildID, "count", len(defs))

	if err := dc.SetStatus(cfg.BotStatus); err != nil {
		slog.Warn("failed to set bot status", "error", err)
	}

	slog.Info("startup: entering discord run loop")
	return dc.Run(ctx)
}
