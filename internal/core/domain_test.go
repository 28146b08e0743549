package core

import (
	"errors"
	"testing"
)

func validRecord() ExpenseRecord {
	return ExpenseRecord{
		ID:        "rec-1",
		Date:      "2025-03-14",
		Store:     "스타벅스",
		Category:  "카페",
		Item:      "아메리카노",
		UnitPrice: 4500,
		Quantity:  1,
		Amount:    4500,
		Payment:   PaymentCard,
		Source:    SourceVoice,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ExpenseRecord)
		wantErr error
	}{
		{"valid", func(r *ExpenseRecord) {}, nil},
		{"zero price is allowed", func(r *ExpenseRecord) { r.UnitPrice = 0; r.Amount = 0 }, nil},
		{"empty item", func(r *ExpenseRecord) { r.Item = "  " }, ErrEmptyItem},
		{"bad date", func(r *ExpenseRecord) { r.Date = "03/14/2025" }, ErrInvalidDate},
		{"negative price", func(r *ExpenseRecord) { r.UnitPrice = -1; r.Amount = -1 }, ErrInvalidPrice},
		{"price above cap", func(r *ExpenseRecord) {
			r.UnitPrice = MaxUnitPrice + 1
			r.Amount = r.UnitPrice
		}, ErrInvalidPrice},
		{"zero quantity", func(r *ExpenseRecord) { r.Quantity = 0; r.Amount = 0 }, ErrInvalidQuantity},
		{"amount mismatch", func(r *ExpenseRecord) { r.Amount = 9999 }, ErrAmountMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecompute(t *testing.T) {
	r := validRecord()
	r.UnitPrice = 3000
	r.Quantity = 4
	r = r.Recompute()
	if r.Amount != 12000 {
		t.Errorf("Amount = %d, want 12000", r.Amount)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("recomputed record should validate: %v", err)
	}
}

func TestWithDefaults(t *testing.T) {
	r := ExpenseRecord{UnitPrice: 3000, Quantity: 2}
	r = r.WithDefaults()

	if r.ID == "" {
		t.Error("ID not generated")
	}
	if r.Date != Today() {
		t.Errorf("Date = %q, want today", r.Date)
	}
	if r.Store != LabelOther || r.Category != LabelOther {
		t.Errorf("labels = %q/%q, want %q", r.Store, r.Category, LabelOther)
	}
	if r.Item != "미분류" {
		t.Errorf("Item = %q, want 미분류", r.Item)
	}
	if r.Payment != PaymentCash {
		t.Errorf("Payment = %q, want %q", r.Payment, PaymentCash)
	}
	if r.Source != SourceVoice {
		t.Errorf("Source = %q, want %q", r.Source, SourceVoice)
	}
	if r.Amount != 6000 {
		t.Errorf("Amount = %d, want recomputed 6000", r.Amount)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("defaulted record should validate: %v", err)
	}
}

func TestWithDefaultsKeepsExistingValues(t *testing.T) {
	r := validRecord().WithDefaults()
	if r.ID != "rec-1" || r.Item != "아메리카노" || r.Payment != PaymentCard {
		t.Errorf("existing fields overwritten: %+v", r)
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty id %q", id)
		}
		seen[id] = true
	}
}

func TestFormatWon(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0원"},
		{500, "500원"},
		{4500, "4,500원"},
		{30000, "30,000원"},
		{1234567, "1,234,567원"},
		{-4500, "-4,500원"},
	}
	for _, tt := range tests {
		if got := FormatWon(tt.in); got != tt.want {
			t.Errorf("FormatWon(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
