package google

import (
	"testing"

	"gagyebu/internal/core"
)

func TestRecordToRowOrder(t *testing.T) {
	r := core.ExpenseRecord{
		Date:      "2025-03-14",
		Store:     "스타벅스",
		Category:  "카페",
		Item:      "아메리카노",
		UnitPrice: 4500,
		Quantity:  1,
		Amount:    4500,
		Payment:   "카드",
		Memo:      "",
		Source:    core.SourceVoice,
	}
	row := recordToRow(r)
	if len(row) != len(Headers) {
		t.Fatalf("row has %d cells, want %d", len(row), len(Headers))
	}
	if row[0] != "2025-03-14" || row[3] != "아메리카노" || row[4] != int64(4500) || row[9] != core.SourceVoice {
		t.Errorf("unexpected row layout: %v", row)
	}
}

func TestRecordToRowDefaultsSource(t *testing.T) {
	row := recordToRow(core.ExpenseRecord{Item: "라면"})
	if row[9] != core.SourceVoice {
		t.Errorf("source cell = %v, want %q", row[9], core.SourceVoice)
	}
}

func TestRecordFromRow(t *testing.T) {
	row := []any{"2025-03-14", "편의점", "식비", "라면", "1200", float64(1), float64(1200), "현금", "", "voice"}
	r := recordFromRow(row)
	if r.Item != "라면" || r.UnitPrice != 1200 || r.Quantity != 1 || r.Amount != 1200 {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.Store != "편의점" || r.Payment != "현금" || r.Source != "voice" {
		t.Errorf("unexpected record labels: %+v", r)
	}
}

func TestRecordFromShortRow(t *testing.T) {
	r := recordFromRow([]any{"2025-03-14", "마트"})
	if r.Date != "2025-03-14" || r.Store != "마트" {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.Item != "" || r.UnitPrice != 0 || r.Quantity != 0 {
		t.Errorf("missing cells should be zero values: %+v", r)
	}
}
