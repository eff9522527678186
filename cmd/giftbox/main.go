package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/cli"
	"github.com/alexanderramin/giftbox/internal/config"
	"github.com/alexanderramin/giftbox/internal/db"
	"github.com/alexanderramin/giftbox/internal/repository"
	"github.com/alexanderramin/giftbox/internal/service"
	"github.com/mattn/go-isatty"
)

// flushTimeout bounds how long queued analytics may take to drain on exit.
const flushTimeout = 3 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Diagnostics go to the log file; the terminal belongs to the TUI.
	logOut := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))

	// Wire repositories and the journal service
	eventRepo := repository.NewSQLiteEventRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogFile != "" {
		observers = append(observers, service.NewLogUseCaseObserver(logOut))
	}
	journal := service.NewJournalService(eventRepo, settingsRepo, uow, observers...)

	ctx := context.Background()
	sessionID, err := journal.SessionID(ctx)
	if err != nil {
		return fmt.Errorf("loading session id: %w", err)
	}

	// Wire analytics sinks
	sinks, closeSinks, err := buildSinks(cfg, eventRepo, logger, logOut)
	if err != nil {
		return err
	}
	defer closeSinks()

	dispatcher := analytics.NewDispatcher(sessionID,
		analytics.WithSinks(sinks...),
		analytics.WithQueueSize(cfg.QueueSize),
		analytics.WithLogger(logger),
	)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		if err := dispatcher.Close(flushCtx); err != nil {
			logger.Warn("analytics_flush_incomplete", "error", err.Error(), "dropped", dispatcher.Dropped())
		}
	}()

	app := &cli.App{
		Journal:  journal,
		Recorder: dispatcher,
		Options:  cli.PlayOptionsFrom(cfg),
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

// buildSinks returns every configured sink plus a func releasing their
// resources. The local journal is always on.
func buildSinks(cfg config.Config, events *repository.SQLiteEventRepo, logger *slog.Logger, logOut io.Writer) ([]analytics.Sink, func(), error) {
	sinks := []analytics.Sink{analytics.NewJournalSink(events)}
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if wh := analytics.NewWebhookSink(analytics.WebhookConfig{
		URL:        cfg.LogURL,
		Secret:     cfg.LogSecret,
		MaxRetries: uint64(cfg.WebhookRetries),
		RatePerSec: cfg.WebhookRate,
	}); wh != nil {
		sinks = append(sinks, wh)
	}

	if cfg.RedisAddr != "" {
		client := analytics.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		closers = append(closers, func() { _ = client.Close() })
		sinks = append(sinks, analytics.NewRedisSink(client, cfg.RedisKey, cfg.RedisMaxLen))
	}

	if cfg.MetricsAddr != "" {
		reg := analytics.NewMetricsRegistry()
		ms, err := analytics.NewMetricsSink(reg)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		sinks = append(sinks, ms)

		srv := analytics.NewMetricsServer(cfg.MetricsAddr, reg)
		srv.Start(func(err error) {
			logger.Error("metrics_server_failed", "addr", cfg.MetricsAddr, "error", err.Error())
		})
		closers = append(closers, func() {
			ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
			defer cancel()
			_ = srv.Shutdown(ctx)
		})
	}

	if cfg.LogEvents {
		w := logOut
		if cfg.LogFile == "" {
			w = os.Stderr
		}
		sinks = append(sinks, analytics.NewLogSink(w))
	}

	return sinks, closeAll, nil
}
