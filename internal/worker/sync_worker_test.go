package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gagyebu/internal/amqp"
	"gagyebu/internal/core"
	"gagyebu/internal/sheets"
	"gagyebu/internal/sheets/memory"
	"gagyebu/internal/storage"
)

func newTestRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "gagyebu.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func capture(t *testing.T, repo *storage.SQLiteRepository, id, item string, price int64) {
	t.Helper()
	_, err := repo.Append(context.Background(), []core.ExpenseRecord{{
		ID:        id,
		Date:      "2025-03-14",
		Store:     "편의점",
		Category:  "식비",
		Item:      item,
		UnitPrice: price,
		Quantity:  1,
		Amount:    price,
		Payment:   core.PaymentCash,
		Source:    core.SourceVoice,
	}})
	if err != nil {
		t.Fatalf("capture record: %v", err)
	}
}

func TestHandleSyncMessage(t *testing.T) {
	repo := newTestRepo(t)
	sink := memory.New()
	w := NewSyncWorker(repo, sink, 10)
	ctx := context.Background()

	capture(t, repo, "a", "라면", 1200)

	if err := w.HandleSyncMessage(ctx, &amqp.RecordSyncMessage{RecordID: "a"}); err != nil {
		t.Fatalf("HandleSyncMessage: %v", err)
	}

	shipped, _ := sink.List(ctx)
	if len(shipped) != 1 || shipped[0].Item != "라면" {
		t.Fatalf("shipped = %+v, want one 라면 record", shipped)
	}
	n, _ := repo.PendingCount(ctx)
	if n != 0 {
		t.Errorf("pending = %d, want 0", n)
	}
}

func TestHandleSyncMessageMissingRecord(t *testing.T) {
	repo := newTestRepo(t)
	w := NewSyncWorker(repo, memory.New(), 10)

	// A message for a deleted record is acked, not requeued forever.
	if err := w.HandleSyncMessage(context.Background(), &amqp.RecordSyncMessage{RecordID: "ghost"}); err != nil {
		t.Fatalf("HandleSyncMessage: %v", err)
	}
}

func TestProcessPending(t *testing.T) {
	repo := newTestRepo(t)
	sink := memory.New()
	w := NewSyncWorker(repo, sink, 2)
	ctx := context.Background()

	capture(t, repo, "a", "라면", 1200)
	capture(t, repo, "b", "음료수", 1500)
	capture(t, repo, "c", "커피", 4500)

	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("ProcessPending: %v", err)
	}
	if sink.Len() != 2 {
		t.Errorf("first pass shipped %d, want batch of 2", sink.Len())
	}

	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("ProcessPending second pass: %v", err)
	}
	if sink.Len() != 3 {
		t.Errorf("shipped %d, want 3", sink.Len())
	}
	n, _ := repo.PendingCount(ctx)
	if n != 0 {
		t.Errorf("pending = %d, want 0", n)
	}
}

type failingWriter struct{}

func (failingWriter) Append(ctx context.Context, records []core.ExpenseRecord) (sheets.AppendResult, error) {
	return sheets.AppendResult{}, errors.New("sheet unavailable")
}

func TestProcessPendingKeepsFailedRecords(t *testing.T) {
	repo := newTestRepo(t)
	w := NewSyncWorker(repo, failingWriter{}, 10)
	ctx := context.Background()

	capture(t, repo, "a", "라면", 1200)

	if err := w.ProcessPending(ctx); err == nil {
		t.Fatal("expected error when the writer fails")
	}
	n, _ := repo.PendingCount(ctx)
	if n != 1 {
		t.Errorf("pending = %d, want 1 so the next pass retries", n)
	}
}
