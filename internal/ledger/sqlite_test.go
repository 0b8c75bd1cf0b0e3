//go:build sqlite

package ledger

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	rec := NewRecord()
	rec.Key = "aa"
	rec.Dimension = 1
	rec.Radius = 1
	rec.Variant = "1d-single"
	rec.AliveRatio = 0.25
	rec.Interesting = true
	rec.Status = StatusRendered
	rec.Path = "output/1/1/0.25_aa.gif"
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	skip := NewRecord()
	skip.Key = "aa"
	skip.Status = StatusSkipped
	if err := store.Save(ctx, skip); err != nil {
		t.Fatalf("save skip: %v", err)
	}

	latest, ok, err := store.Latest(ctx, "aa")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if !ok || latest.ID != skip.ID || latest.Status != StatusSkipped {
		t.Fatalf("unexpected latest record: ok=%v %+v", ok, latest)
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[StatusRendered] != 1 || counts[StatusSkipped] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}

	if _, ok, err := store.Latest(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
}

func TestNewStoreSQLite(t *testing.T) {
	store, err := NewStore("sqlite", filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := CloseIfSupported(store); err != nil {
		t.Fatalf("close: %v", err)
	}
}
