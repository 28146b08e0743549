// Package services orchestrates parsing, capture, and sync publishing.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gagyebu/internal/core"
	"gagyebu/internal/parser"
	"gagyebu/internal/sheets"
)

// ErrEmptyTranscript rejects dictations with no content at all.
var ErrEmptyTranscript = errors.New("transcript is empty")

// SyncPublisher enqueues a sync request for a captured record. Satisfied
// by the AMQP client; nil means the backend writes synchronously and no
// worker is involved.
type SyncPublisher interface {
	PublishRecordSync(ctx context.Context, recordID string) error
}

// RecordStore is the full store surface the service needs.
type RecordStore interface {
	sheets.RecordWriter
	sheets.RecordLister
	sheets.StatusChecker
}

// ExpenseService turns transcripts into stored expense records.
type ExpenseService struct {
	parser    *parser.Parser
	store     RecordStore
	publisher SyncPublisher
}

func NewExpenseService(store RecordStore, publisher SyncPublisher) *ExpenseService {
	return &ExpenseService{
		parser:    parser.New(),
		store:     store,
		publisher: publisher,
	}
}

// ParseTranscript runs the parser without storing anything, for preview.
func (s *ExpenseService) ParseTranscript(transcript string) ([]core.ExpenseRecord, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}
	return s.parser.Parse(transcript), nil
}

// CaptureVoice parses a transcript, stores the resulting records, and
// queues them for sync. The store write decides success; a publish
// failure is logged and swallowed because the periodic sweep retries it.
func (s *ExpenseService) CaptureVoice(ctx context.Context, transcript string) ([]core.ExpenseRecord, sheets.AppendResult, error) {
	records, err := s.ParseTranscript(transcript)
	if err != nil {
		return nil, sheets.AppendResult{}, err
	}
	res, err := s.SaveRecords(ctx, records)
	if err != nil {
		return nil, sheets.AppendResult{}, err
	}
	return records, res, nil
}

// SaveRecords fills defaults, validates, stores, and queues records
// supplied directly by a client.
func (s *ExpenseService) SaveRecords(ctx context.Context, records []core.ExpenseRecord) (sheets.AppendResult, error) {
	if len(records) == 0 {
		return sheets.AppendResult{}, errors.New("no records to save")
	}

	for i := range records {
		records[i] = records[i].WithDefaults()
		if err := records[i].Validate(); err != nil {
			return sheets.AppendResult{}, fmt.Errorf("record %d: %w", i, err)
		}
	}

	res, err := s.store.Append(ctx, records)
	if err != nil {
		return sheets.AppendResult{}, fmt.Errorf("save records: %w", err)
	}

	for _, r := range records {
		if err := s.publishSync(ctx, r.ID); err != nil {
			slog.ErrorContext(ctx, "failed to publish sync message",
				"record_id", r.ID, "error", err)
			// Records are stored; the sweep will pick them up.
		}
	}

	return res, nil
}

func (s *ExpenseService) publishSync(ctx context.Context, recordID string) error {
	if s.publisher == nil {
		return nil
	}
	return s.publisher.PublishRecordSync(ctx, recordID)
}

// Summary aggregates every stored record.
func (s *ExpenseService) Summary(ctx context.Context) (core.Summary, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("list records: %w", err)
	}
	return core.Summarize(records, core.Today()), nil
}

// Status reports whether the record store is reachable.
func (s *ExpenseService) Status(ctx context.Context) error {
	return s.store.CheckStatus(ctx)
}
