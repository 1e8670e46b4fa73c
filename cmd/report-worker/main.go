package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"finreport/internal/amqp"
	"finreport/internal/calendar"
	"finreport/internal/config"
	"finreport/internal/ledger"
	gsheet "finreport/internal/ledger/google"
	mem "finreport/internal/ledger/memory"
	applog "finreport/internal/log"
	"finreport/internal/services"
	"finreport/internal/sink"
	"finreport/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: "report-worker"})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the report worker")
		os.Exit(1)
	}

	var reader ledger.TransactionReader
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite backend", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		reader = repo
	case "sheets":
		cli, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets backend", "error", err)
			os.Exit(1)
		}
		reader = cli
	default:
		store := mem.New()
		if cfg.SeedFile != "" {
			var err error
			store, err = mem.NewFromFile(cfg.SeedFile)
			if err != nil {
				logger.Error("Failed to seed memory backend", "error", err, "file", cfg.SeedFile)
				os.Exit(1)
			}
		}
		reader = store
	}

	reportSink, err := sink.NewWriter(cfg.ReportsDir)
	if err != nil {
		logger.Error("Failed to initialize report sink", "error", err, "dir", cfg.ReportsDir)
		os.Exit(1)
	}

	jobs, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err, "url", cfg.AMQPURL)
		os.Exit(1)
	}
	defer jobs.Close()

	svc := services.NewReportService(reader, reportSink, nil, calendar.Russia{})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Report worker started", "queue", cfg.AMQPQueue, "backend", cfg.DataBackend)
	err = jobs.ConsumeReportJobs(ctx, func(job *amqp.ReportJob) error {
		return svc.RunJob(ctx, job)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Report worker stopped gracefully")
}
