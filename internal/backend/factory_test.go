package backend

import (
	"context"
	"path/filepath"
	"testing"

	"gagyebu/internal/config"
	"gagyebu/internal/core"
)

func TestCreateMemoryBackend(t *testing.T) {
	f := NewFactory(nil)
	res, err := f.CreateBackend(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	if res.Backend == nil {
		t.Fatal("nil backend")
	}
	if res.Publisher != nil || res.Cleanup != nil {
		t.Errorf("memory backend should have no publisher or cleanup")
	}
}

func TestCreateSQLiteBackend(t *testing.T) {
	f := NewFactory(nil)
	ctx := context.Background()
	res, err := f.CreateBackend(ctx, Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "gagyebu.db"),
	})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	t.Cleanup(func() { res.Cleanup() })

	if _, err := res.Backend.Append(ctx, []core.ExpenseRecord{{
		ID:        core.NewID(),
		Date:      "2025-03-14",
		Store:     "편의점",
		Category:  "식비",
		Item:      "라면",
		UnitPrice: 1200,
		Quantity:  1,
		Amount:    1200,
		Payment:   core.PaymentCash,
		Source:    core.SourceVoice,
	}}); err != nil {
		t.Fatalf("Append through backend: %v", err)
	}

	records, err := res.Backend.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}
}

func TestCreateBackendRejectsInvalidType(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.CreateBackend(context.Background(), Config{Type: "redis"}); err == nil {
		t.Fatal("expected error for unknown backend type")
	}
}

func TestFromAppConfig(t *testing.T) {
	appCfg := &config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: "/tmp/x.db",
		AMQPURL:      "amqp://localhost",
		AMQPExchange: "gagyebu",
		AMQPQueue:    "sync_records",
	}
	cfg, err := FromAppConfig(appCfg)
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "/tmp/x.db" {
		t.Errorf("unexpected config: %+v", cfg)
	}

	appCfg.DataBackend = "redis"
	if _, err := FromAppConfig(appCfg); err == nil {
		t.Fatal("expected error for invalid backend type")
	}
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
