package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"gagyebu/internal/amqp"
	"gagyebu/internal/cli"
	ports "gagyebu/internal/sheets"
	gsheet "gagyebu/internal/sheets/google"
	"gagyebu/internal/sheets/memory"
	"gagyebu/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	logger.Info("starting gagyebu-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// Without a spreadsheet the worker still runs, draining into memory.
	// That keeps local development loops working end to end.
	var writer ports.RecordWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		writer = memory.New()
		logger.Warn("no spreadsheet configured, synced records go to an in-memory sink")
	}

	syncWorker := worker.NewSyncWorker(repo, writer, cfg.SyncBatchSize)

	// AMQP is optional here too; without it only the periodic sweep runs.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
	} else {
		logger.Info("AMQP disabled, relying on periodic sweep only")
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return syncWorker.RunPeriodicSync(gctx, cfg.SyncInterval)
	})

	if amqpClient != nil {
		g.Go(func() error {
			return amqpClient.ConsumeRecordSync(gctx, func(msg *amqp.RecordSyncMessage) error {
				return syncWorker.HandleSyncMessage(gctx, msg)
			})
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped with error", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("worker stopped gracefully")
}
