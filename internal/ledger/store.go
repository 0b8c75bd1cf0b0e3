// Package ledger records the outcome of every survey trial, keyed by the
// canonical rule key.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the terminal state of one trial.
type Status string

const (
	StatusRendered Status = "rendered"
	StatusSkipped  Status = "skipped"
	StatusBoring   Status = "boring"
	StatusFailed   Status = "failed"
)

// Record describes one trial.
type Record struct {
	ID          string
	Key         string
	Dimension   int
	Radius      int
	Variant     string
	AliveRatio  float64
	Interesting bool
	Status      Status
	Path        string
	Error       string
	CreatedAt   time.Time
}

// NewRecord stamps a fresh id and creation time.
func NewRecord() Record {
	return Record{ID: uuid.New().String(), CreatedAt: time.Now().UTC()}
}

// Store persists trial records. Latest returns the most recent record for a
// rule key; Counts aggregates records by status.
type Store interface {
	Init(ctx context.Context) error
	Save(ctx context.Context, rec Record) error
	Latest(ctx context.Context, key string) (Record, bool, error)
	Counts(ctx context.Context) (map[Status]int, error)
}
