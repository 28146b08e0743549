package memory

import (
	"context"
	"testing"

	"gagyebu/internal/core"
)

func record(item string, price int64) core.ExpenseRecord {
	return core.ExpenseRecord{
		ID:        core.NewID(),
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

func TestAppendAndList(t *testing.T) {
	s := New()
	ctx := context.Background()

	res, err := s.Append(ctx, []core.ExpenseRecord{record("라면", 1200), record("음료수", 1500)})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if res.UpdatedRows != 2 {
		t.Errorf("UpdatedRows = %d, want 2", res.UpdatedRows)
	}
	if res.UpdatedRange != "A2:J3" {
		t.Errorf("UpdatedRange = %q, want A2:J3", res.UpdatedRange)
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].Item != "라면" || got[1].Item != "음료수" {
		t.Errorf("records out of order: %+v", got)
	}

	// Mutating the returned slice must not touch the store.
	got[0].Item = "변조"
	again, _ := s.List(ctx)
	if again[0].Item != "라면" {
		t.Errorf("List leaked internal state")
	}
}

func TestAppendRejectsInvalidRecord(t *testing.T) {
	s := New()
	bad := record("", 1200)
	if _, err := s.Append(context.Background(), []core.ExpenseRecord{bad}); err == nil {
		t.Fatal("expected validation error for empty item")
	}
	if s.Len() != 0 {
		t.Errorf("invalid append must not store records, got %d", s.Len())
	}
}

func TestCheckStatus(t *testing.T) {
	if err := New().CheckStatus(context.Background()); err != nil {
		t.Fatalf("CheckStatus: %v", err)
	}
}
