// Package backend builds the record store stack selected by configuration.
package backend

import (
	"context"

	"gagyebu/internal/services"
	"gagyebu/internal/sheets"
)

// Backend is the store surface every variant must provide.
type Backend interface {
	sheets.RecordWriter
	sheets.RecordLister
	sheets.StatusChecker
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// BackendResult bundles the store with its optional sync publisher and
// cleanup. The publisher is non-nil only for the sqlite backend with AMQP
// configured; the other backends write to their destination directly.
type BackendResult struct {
	Backend   Backend
	Publisher services.SyncPublisher
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}
