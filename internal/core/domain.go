package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Label sets for the three classification dimensions. Order is display
// order; classification order lives in the parser rule tables.
var (
	Stores = []string{
		"스타벅스", "메가커피", "맥도날드", "편의점", "마트", "카페", "식당",
		"패스트푸드", "약국", "생활용품점", "주유소", "병원", "기타",
	}

	Categories = []string{
		"카페", "식비", "교통", "생활용품", "간식", "의료", "엔터", "교육", "기타",
	}

	Payments = []string{
		"카드", "계좌이체", "모바일결제", "포인트", "현금",
	}
)

const (
	// LabelOther is the default for both store and category.
	LabelOther = "기타"

	// PaymentCash is the normal-path payment default.
	PaymentCash = "현금"
	// PaymentCard is the fallback record's payment default.
	PaymentCard = "카드"

	// SourceVoice marks records produced by the transcript pipeline.
	SourceVoice = "voice"
	// SourceReceipt marks records produced by receipt capture.
	SourceReceipt = "receipt"

	// MaxUnitPrice bounds extracted prices, in whole won.
	MaxUnitPrice = 1_000_000
)

// ExpenseRecord is one expense line item. Amounts are whole won.
type ExpenseRecord struct {
	ID        string `json:"id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Store     string `json:"store"`
	Category  string `json:"category"`
	Item      string `json:"item"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int64  `json:"quantity"`
	Amount    int64  `json:"amount"`
	Payment   string `json:"payment"`
	Memo      string `json:"memo"`
	Source    string `json:"source"`
}

var (
	ErrEmptyItem       = errors.New("empty item")
	ErrInvalidPrice    = errors.New("invalid unit price")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrAmountMismatch  = errors.New("amount does not equal unitPrice * quantity")
	ErrInvalidDate     = errors.New("invalid date")
)

// NewID returns a fresh opaque record ID.
func NewID() string {
	return uuid.NewString()
}

// Today returns the current date in the record date format.
func Today() string {
	return time.Now().Format("2006-01-02")
}

func (r ExpenseRecord) Validate() error {
	if strings.TrimSpace(r.Item) == "" {
		return ErrEmptyItem
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return ErrInvalidDate
	}
	if r.UnitPrice < 0 || r.UnitPrice > MaxUnitPrice {
		return ErrInvalidPrice
	}
	if r.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if r.Amount != r.UnitPrice*r.Quantity {
		return ErrAmountMismatch
	}
	return nil
}

// Recompute returns a copy with amount derived from unitPrice and quantity.
// The editing collaborator must apply this after every field change.
func (r ExpenseRecord) Recompute() ExpenseRecord {
	r.Amount = r.UnitPrice * r.Quantity
	return r
}

// WithDefaults fills missing fields the way the save endpoint accepts
// externally edited records: absent fields fall back to safe values and the
// amount identity is restored.
func (r ExpenseRecord) WithDefaults() ExpenseRecord {
	if r.ID == "" {
		r.ID = NewID()
	}
	if strings.TrimSpace(r.Date) == "" {
		r.Date = Today()
	}
	if strings.TrimSpace(r.Store) == "" {
		r.Store = LabelOther
	}
	if strings.TrimSpace(r.Category) == "" {
		r.Category = LabelOther
	}
	if strings.TrimSpace(r.Item) == "" {
		r.Item = "미분류"
	}
	if r.Quantity < 1 {
		r.Quantity = 1
	}
	if strings.TrimSpace(r.Payment) == "" {
		r.Payment = PaymentCash
	}
	if r.Source != SourceVoice && r.Source != SourceReceipt {
		r.Source = SourceVoice
	}
	return r.Recompute()
}
