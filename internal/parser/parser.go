// Package parser turns Korean voice transcripts into structured expense
// records. It normalizes dictated amounts, classifies the store and payment
// method from the whole sentence, and extracts item/price pairs with a
// small set of ordered regex families.
package parser

import (
	"time"

	"gagyebu/internal/core"
)

// Parser converts one transcript into zero or more expense records. The
// zero value is not usable; construct with New.
type Parser struct {
	now   func() time.Time
	newID func() string
}

func New() *Parser {
	return &Parser{now: time.Now, newID: core.NewID}
}

// Parse extracts expense records from a dictated transcript. A transcript
// that is empty or whitespace yields nil. A transcript with no extractable
// item/price pair yields a single fallback record holding the normalized
// text as memo, so no dictation is silently lost. Two calls on the same
// transcript produce identical records except for their ids.
func (p *Parser) Parse(transcript string) []core.ExpenseRecord {
	text := Normalize(transcript)
	if text == "" {
		return nil
	}

	date := p.now().Format("2006-01-02")
	store := ClassifyStore(text)
	payment := classifyPayment(text)

	candidates := extractCandidates(text)
	if len(candidates) == 0 {
		return []core.ExpenseRecord{p.fallback(text, date, store)}
	}

	records := make([]core.ExpenseRecord, 0, len(candidates))
	for _, c := range candidates {
		records = append(records, core.ExpenseRecord{
			ID:        p.newID(),
			Date:      date,
			Store:     store,
			Category:  classifyCategory(c.item, store),
			Item:      c.item,
			UnitPrice: c.price,
			Quantity:  1,
			Amount:    c.price,
			Payment:   payment,
			Source:    core.SourceVoice,
		})
	}
	return records
}

// fallback preserves a transcript nothing could be extracted from. The
// payment is pinned to 카드 so the record stands out for manual review.
func (p *Parser) fallback(text, date, store string) core.ExpenseRecord {
	return core.ExpenseRecord{
		ID:       p.newID(),
		Date:     date,
		Store:    store,
		Category: core.LabelOther,
		Item:     "음성 입력",
		Quantity: 1,
		Payment:  core.PaymentCard,
		Memo:     text,
		Source:   core.SourceVoice,
	}
}
