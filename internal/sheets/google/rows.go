package google

import (
	"strconv"

	"gagyebu/internal/core"
)

// Headers written to row 1 of the ledger sheet, one column per record
// field in A:J order.
var Headers = []string{
	"날짜", "상점", "카테고리", "품목", "단가", "수량", "금액", "결제수단", "메모", "입력방식",
}

func recordToRow(r core.ExpenseRecord) []any {
	source := r.Source
	if source == "" {
		source = core.SourceVoice
	}
	return []any{
		r.Date,
		r.Store,
		r.Category,
		r.Item,
		r.UnitPrice,
		r.Quantity,
		r.Amount,
		r.Payment,
		r.Memo,
		source,
	}
}

// recordFromRow rebuilds a record from a sheet row. Rows written by hand
// may be short or hold formatted numbers, so missing cells become zero
// values and numeric cells are parsed leniently.
func recordFromRow(row []any) core.ExpenseRecord {
	return core.ExpenseRecord{
		Date:      cellString(row, 0),
		Store:     cellString(row, 1),
		Category:  cellString(row, 2),
		Item:      cellString(row, 3),
		UnitPrice: cellInt(row, 4),
		Quantity:  cellInt(row, 5),
		Amount:    cellInt(row, 6),
		Payment:   cellString(row, 7),
		Memo:      cellString(row, 8),
		Source:    cellString(row, 9),
	}
}

func cellString(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func cellInt(row []any, i int) int64 {
	if i >= len(row) {
		return 0
	}
	switch v := row[i].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
