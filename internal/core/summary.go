package core

import "sort"

// LabelAmount is an amount aggregated under one label.
type LabelAmount struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Summary aggregates a batch of records for the summary panel.
type Summary struct {
	Count       int           `json:"count"`
	TotalAmount int64         `json:"totalAmount"`
	TodayCount  int           `json:"todayCount"`
	TodayAmount int64         `json:"todayAmount"`
	ByCategory  []LabelAmount `json:"byCategory"` // descending by amount
	ByPayment   []LabelAmount `json:"byPayment"`  // descending by amount
	VoiceCount  int           `json:"voiceCount"`
	OtherCount  int           `json:"otherCount"`
}

// Summarize aggregates records; today selects which records count toward the
// today totals and is expected in the record date format.
func Summarize(records []ExpenseRecord, today string) Summary {
	s := Summary{Count: len(records)}
	byCat := map[string]int64{}
	byPay := map[string]int64{}
	for _, r := range records {
		s.TotalAmount += r.Amount
		byCat[r.Category] += r.Amount
		byPay[r.Payment] += r.Amount
		if r.Date == today {
			s.TodayCount++
			s.TodayAmount += r.Amount
		}
		if r.Source == SourceVoice {
			s.VoiceCount++
		} else {
			s.OtherCount++
		}
	}
	s.ByCategory = sortedAmounts(byCat)
	s.ByPayment = sortedAmounts(byPay)
	return s
}

func sortedAmounts(m map[string]int64) []LabelAmount {
	out := make([]LabelAmount, 0, len(m))
	for label, amount := range m {
		out = append(out, LabelAmount{Label: label, Amount: amount})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Label < out[j].Label
	})
	return out
}
