// Package memory holds expense records in process memory. Useful for
// development and tests where no spreadsheet or database is available.
package memory

import (
	"context"
	"fmt"
	"sync"

	"gagyebu/internal/core"
	ports "gagyebu/internal/sheets"
)

type Store struct {
	mu      sync.Mutex
	records []core.ExpenseRecord
}

// Ensure interface conformance
var (
	_ ports.RecordWriter  = (*Store)(nil)
	_ ports.RecordLister  = (*Store)(nil)
	_ ports.StatusChecker = (*Store)(nil)
)

func New() *Store {
	return &Store{}
}

func (s *Store) Append(ctx context.Context, records []core.ExpenseRecord) (ports.AppendResult, error) {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return ports.AppendResult{}, fmt.Errorf("record %s: %w", r.ID, err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	start := len(s.records)
	s.records = append(s.records, records...)
	return ports.AppendResult{
		UpdatedRows:  int64(len(records)),
		UpdatedRange: fmt.Sprintf("A%d:J%d", start+2, start+1+len(records)),
	}, nil
}

func (s *Store) List(ctx context.Context) ([]core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.ExpenseRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *Store) CheckStatus(ctx context.Context) error {
	return nil
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
