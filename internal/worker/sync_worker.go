// Package worker drains captured expense records from SQLite into the
// spreadsheet. It reacts to queue messages and sweeps pending rows on a
// timer as a backup in case messages are lost.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gagyebu/internal/amqp"
	"gagyebu/internal/core"
	"gagyebu/internal/sheets"
	"gagyebu/internal/storage"
)

type SyncWorker struct {
	storage   *storage.SQLiteRepository
	writer    sheets.RecordWriter
	batchSize int
}

func NewSyncWorker(repo *storage.SQLiteRepository, writer sheets.RecordWriter, batchSize int) *SyncWorker {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &SyncWorker{
		storage:   repo,
		writer:    writer,
		batchSize: batchSize,
	}
}

// HandleSyncMessage pushes the record named by a queue message to the
// spreadsheet. The record is read from storage rather than the message so
// the worker always ships the current state.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	if err := w.syncOne(ctx, msg.RecordID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted before the worker got to it; nothing to ship.
			slog.WarnContext(ctx, "record gone before sync", "record_id", msg.RecordID)
			return nil
		}
		return fmt.Errorf("sync record %s: %w", msg.RecordID, err)
	}
	return nil
}

func (w *SyncWorker) syncOne(ctx context.Context, id string) error {
	record, err := w.storage.Get(ctx, id)
	if err != nil {
		return err
	}

	if _, err := w.writer.Append(ctx, []core.ExpenseRecord{record}); err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "failed to mark sync error", "record_id", id, "error", markErr)
		}
		return err
	}

	if err := w.storage.MarkSynced(ctx, []string{id}); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}

	slog.InfoContext(ctx, "record synced", "record_id", id, "item", record.Item)
	return nil
}

// ProcessPending sweeps unsynced records in batches. This is the backup
// path for messages that never arrived.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.PendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending records: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "processing pending records", "count", len(pending))

	var failed int
	for _, record := range pending {
		if err := w.syncOne(ctx, record.ID); err != nil {
			slog.ErrorContext(ctx, "failed to sync pending record",
				"record_id", record.ID, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d pending records failed to sync", failed, len(pending))
	}
	return nil
}

// RunPeriodicSync sweeps pending records every interval until ctx ends.
func (w *SyncWorker) RunPeriodicSync(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}

	// One pass at startup catches records captured while the worker was down.
	if err := w.ProcessPending(ctx); err != nil {
		slog.ErrorContext(ctx, "startup sync pass failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ProcessPending(ctx); err != nil {
				slog.ErrorContext(ctx, "periodic sync pass failed", "error", err)
			}
		}
	}
}
