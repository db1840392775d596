// Package store persists drop-rows step parameters.
//
// Parameters are stored exactly as written, legacy shapes included. The
// core service migrates them on load and writes the migrated shape back.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/JonMunkholm/droprows/internal/params"
	"github.com/google/uuid"
)

// ErrStepNotFound is returned when no step has the requested ID.
var ErrStepNotFound = errors.New("step not found")

// Step is one configured drop-rows step.
type Step struct {
	ID        uuid.UUID     `json:"id"`
	Params    params.Stored `json:"params"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// StepStore is implemented by Memory and Postgres.
type StepStore interface {
	// Get returns ErrStepNotFound if the step does not exist.
	Get(ctx context.Context, id uuid.UUID) (Step, error)

	// Put inserts or replaces a step.
	Put(ctx context.Context, step Step) error

	// Delete returns ErrStepNotFound if the step does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all steps, oldest first.
	List(ctx context.Context) ([]Step, error)
}

func cloneStored(s params.Stored) params.Stored {
	out := s
	if s.FirstRow != nil {
		v := *s.FirstRow
		out.FirstRow = &v
	}
	if s.LastRow != nil {
		v := *s.LastRow
		out.LastRow = &v
	}
	return out
}
