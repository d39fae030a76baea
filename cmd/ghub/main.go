package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/zhenyakul/ghub-international/internal/admission"
	"github.com/zhenyakul/ghub-international/internal/ledger"
	"github.com/zhenyakul/ghub-international/internal/lockfile"
	"github.com/zhenyakul/ghub-international/internal/messaging"
	"github.com/zhenyakul/ghub-international/internal/store"
	"github.com/zhenyakul/ghub-international/internal/telegram"
	"github.com/zhenyakul/ghub-international/internal/util"
	"github.com/zhenyakul/ghub-international/internal/workflow"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for bot state data
	DefaultStateDir = "/var/lib/ghub"
	// DefaultDBFileName is the default SQLite archive filename
	DefaultDBFileName = "ghub.db"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	if err := run(flags); err != nil {
		slog.Error("GHUB bot failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("GHUB bot exited successfully")
}

// Config holds environment configuration
type Config struct {
	BotToken     string
	OperatorChat string
	DatabaseURL  string
	StateDir     string
}

// Flags holds command line flag values
type Flags struct {
	botToken     *string
	operatorChat *string
	dbDSN        *string
	stateDir     *string
	sendRate     *int
}

// initializeLogger sets up structured logging
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("GHUB_DEBUG", false) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		BotToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		OperatorChat: os.Getenv("OPERATOR_CHAT_ID"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		StateDir:     os.Getenv("GHUB_STATE_DIR"),
	}
	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
	}
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"TELEGRAM_BOT_TOKEN_SET", config.BotToken != "",
		"OPERATOR_CHAT_ID_SET", config.OperatorChat != "",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"GHUB_STATE_DIR", config.StateDir)
	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		botToken:     flag.String("telegram-token", config.BotToken, "Telegram bot token (overrides $TELEGRAM_BOT_TOKEN)"),
		operatorChat: flag.String("operator-chat", config.OperatorChat, "operator group chat id for intake handoff (overrides $OPERATOR_CHAT_ID)"),
		dbDSN:        flag.String("db-dsn", config.DatabaseURL, "intake archive DSN, SQLite path or postgres:// URL (overrides $DATABASE_URL)"),
		stateDir:     flag.String("state-dir", config.StateDir, "state directory for bot data (overrides $GHUB_STATE_DIR)"),
		sendRate:     flag.Int("send-rate", telegram.DefaultSendRate, "outbound Telegram calls per second"),
	}
	flag.Parse()
	return flags
}

// buildArchive constructs the intake archive store from the DSN.
func buildArchive(dsn string) (store.Store, error) {
	if dsn == "" {
		slog.Debug("No database DSN provided, using in-memory archive")
		return store.NewInMemoryStore(), nil
	}
	if store.DetectDSNType(dsn) == "postgres" {
		slog.Debug("Detected PostgreSQL DSN, configuring Postgres archive")
		return store.NewPostgresStore(store.WithPostgresDSN(dsn))
	}
	slog.Debug("Detected SQLite DSN, configuring SQLite archive", "db_path", dsn)
	return store.NewSQLiteStore(store.WithSQLiteDSN(dsn))
}

func run(flags Flags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Two instances long-polling the same token would steal each other's
	// updates, so the state directory holds an exclusive lock.
	lock, err := lockfile.Acquire(*flags.stateDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	archive, err := buildArchive(*flags.dbDSN)
	if err != nil {
		return err
	}
	defer archive.Close()

	client, err := telegram.NewClient(*flags.botToken, telegram.WithSendRate(*flags.sendRate))
	if err != nil {
		return err
	}

	var handoff messaging.Notifier
	if *flags.operatorChat != "" {
		handoff = telegram.NewOperatorNotifier(client, *flags.operatorChat)
	} else {
		slog.Warn("No operator chat configured, intake handoff notifications disabled")
	}

	ctrl := admission.NewController(
		admission.WithWindow(util.ParseDurationEnv("GHUB_RATE_WINDOW", admission.DefaultWindow)),
		admission.WithCeiling(util.ParseIntEnv("GHUB_RATE_CEILING", admission.DefaultCeiling)),
		admission.WithSweepInterval(util.ParseDurationEnv("GHUB_SWEEP_INTERVAL", admission.DefaultSweepInterval)),
		admission.WithSessionTTL(util.ParseDurationEnv("GHUB_SESSION_TTL", admission.DefaultSessionTTL)),
	)
	go ctrl.Run(ctx)

	led := ledger.New(client, ledger.DefaultConfig())
	engine := workflow.NewEngine(ctrl, led, client, handoff, archive)

	go client.Start(ctx)

	slog.Info("GHUB intake bot running")
	engine.Run(ctx, client.Updates())
	return nil
}
