package sheets

import (
	"context"
	"errors"

	"gagyebu/internal/core"
)

// AppendResult reports what an append call wrote.
type AppendResult struct {
	UpdatedRows  int64
	UpdatedRange string
}

// Ports for outbound record stores.
type (
	RecordWriter interface {
		Append(ctx context.Context, records []core.ExpenseRecord) (AppendResult, error)
	}

	RecordLister interface {
		List(ctx context.Context) ([]core.ExpenseRecord, error)
	}

	// StatusChecker verifies the store is configured and reachable.
	StatusChecker interface {
		CheckStatus(ctx context.Context) error
	}
)

// Sentinel errors adapters wrap remote failures into, so callers can map
// them to user-facing messages without knowing the transport.
var (
	ErrPermissionDenied = errors.New("no access to the spreadsheet")
	ErrNotFound         = errors.New("spreadsheet not found")
	ErrInvalidRange     = errors.New("invalid sheet range")
)
