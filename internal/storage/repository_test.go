package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gagyebu/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "gagyebu.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func record(id, item string, price int64) core.ExpenseRecord {
	return core.ExpenseRecord{
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
	}
}

func TestAppendGetList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	res, err := repo.Append(ctx, []core.ExpenseRecord{
		record("a", "라면", 1200),
		record("b", "음료수", 1500),
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if res.UpdatedRows != 2 {
		t.Errorf("UpdatedRows = %d, want 2", res.UpdatedRows)
	}

	got, err := repo.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Item != "라면" || got.UnitPrice != 1200 {
		t.Errorf("Get returned %+v", got)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d records, want 2", len(all))
	}
}

func TestGetMissing(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAppendRejectsInvalidRecord(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	bad := record("a", "", 1200)
	if _, err := repo.Append(ctx, []core.ExpenseRecord{bad}); err == nil {
		t.Fatal("expected validation error")
	}
	n, err := repo.PendingCount(ctx)
	if err != nil {
		t.Fatalf("PendingCount: %v", err)
	}
	if n != 0 {
		t.Errorf("pending = %d, want 0", n)
	}
}

func TestSyncLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Append(ctx, []core.ExpenseRecord{
		record("a", "라면", 1200),
		record("b", "음료수", 1500),
		record("c", "커피", 4500),
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	pending, err := repo.PendingSync(ctx, 2)
	if err != nil {
		t.Fatalf("PendingSync: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending, want 2 (limit)", len(pending))
	}

	if err := repo.MarkSynced(ctx, []string{"a", "b"}); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}
	n, err := repo.PendingCount(ctx)
	if err != nil {
		t.Fatalf("PendingCount: %v", err)
	}
	if n != 1 {
		t.Errorf("pending = %d, want 1", n)
	}

	rest, err := repo.PendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("PendingSync: %v", err)
	}
	if len(rest) != 1 || rest[0].ID != "c" {
		t.Errorf("pending records = %+v, want only c", rest)
	}

	if err := repo.MarkSyncError(ctx, "c"); err != nil {
		t.Fatalf("MarkSyncError: %v", err)
	}
	// Errors keep the record pending for the next pass.
	n, _ = repo.PendingCount(ctx)
	if n != 1 {
		t.Errorf("pending after error = %d, want 1", n)
	}
}

func TestCheckStatus(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.CheckStatus(context.Background()); err != nil {
		t.Fatalf("CheckStatus: %v", err)
	}
}
