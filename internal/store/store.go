package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/cfb-realignment/realign-cli/internal/conference"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = eris.New("store: run not found")

// Run is one saved analysis invocation.
type Run struct {
	ID          string                    `json:"id"`
	Label       string                    `json:"label,omitempty"`
	Sport       string                    `json:"sport,omitempty"`
	Conferences int                       `json:"conferences"`
	CreatedAt   time.Time                 `json:"created_at"`
	Stats       []conference.Stats        `json:"stats,omitempty"`
	Details     []conference.SchoolDetail `json:"details,omitempty"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Label  string `json:"label,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for analysis runs.
type Store interface {
	// SaveRun persists a run with its stats and school details. An empty ID
	// or zero CreatedAt is filled in.
	SaveRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	// ListRuns returns run headers, newest first, without stats or details.
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

const defaultListLimit = 100

func prepareRun(run *Run, newID func() string) {
	if run.ID == "" {
		run.ID = newID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.Conferences = len(run.Stats)
}
