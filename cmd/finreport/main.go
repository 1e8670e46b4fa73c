package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finreport/internal/amqp"
	"finreport/internal/calendar"
	"finreport/internal/config"
	apphttp "finreport/internal/http"
	"finreport/internal/ledger"
	gsheet "finreport/internal/ledger/google"
	mem "finreport/internal/ledger/memory"
	applog "finreport/internal/log"
	"finreport/internal/market"
	"finreport/internal/services"
	"finreport/internal/settings"
	"finreport/internal/sink"
	"finreport/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: "finreport"})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	var (
		reader ledger.TransactionReader
		writer ledger.TransactionWriter
	)
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite backend", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		reader, writer = repo, repo
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	case "sheets":
		cli, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets backend", "error", err)
			os.Exit(1)
		}
		reader, writer = cli, cli
		logger.Info("Initialized Google Sheets backend")
	default:
		var store *mem.Store
		if cfg.SeedFile != "" {
			var err error
			store, err = mem.NewFromFile(cfg.SeedFile)
			if err != nil {
				logger.Error("Failed to seed memory backend", "error", err, "file", cfg.SeedFile)
				os.Exit(1)
			}
		} else {
			store = mem.New()
		}
		reader, writer = store, store
		logger.Info("Initialized memory backend", "seed_file", cfg.SeedFile)
	}

	reportSink, err := sink.NewWriter(cfg.ReportsDir)
	if err != nil {
		logger.Error("Failed to initialize report sink", "error", err, "dir", cfg.ReportsDir)
		os.Exit(1)
	}

	// AMQP is optional: without it report jobs are dropped with a warning.
	var jobs *amqp.Client
	if cfg.AMQPURL != "" {
		jobs, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, report jobs disabled", "error", err)
			jobs = nil
		} else {
			defer jobs.Close()
		}
	}

	userSettings := settings.Default()
	if cfg.SettingsPath != "" {
		userSettings, err = settings.Load(cfg.SettingsPath)
		if err != nil {
			logger.Error("Failed to load user settings", "error", err, "path", cfg.SettingsPath)
			os.Exit(1)
		}
	}

	svc := services.NewReportService(reader, reportSink, jobs, calendar.Russia{})

	srv := apphttp.NewServer(":"+cfg.Port, svc, apphttp.Options{
		Writer:          writer,
		Market:          market.NewClient(cfg.CBRURL, cfg.StocksURL),
		Settings:        userSettings,
		EventsCacheSize: cfg.EventsCacheSize,
		EventsCacheTTL:  cfg.EventsCacheTTL,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting finreport server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
