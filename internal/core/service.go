package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/JonMunkholm/droprows/internal/config"
	"github.com/JonMunkholm/droprows/internal/logging"
	"github.com/JonMunkholm/droprows/internal/params"
	"github.com/JonMunkholm/droprows/internal/rowrange"
	"github.com/JonMunkholm/droprows/internal/store"
	"github.com/JonMunkholm/droprows/internal/table"
	"github.com/google/uuid"
)

// Service runs renders and manages saved steps.
type Service struct {
	steps         store.StepStore
	limiter       *RenderLimiter
	maxMaskLength int

	now func() time.Time
}

// NewService creates a Service persisting steps in steps and bounding
// renders by cfg.
func NewService(steps store.StepStore, cfg config.RenderConfig) *Service {
	maxMask := cfg.MaxMaskLength
	if maxMask <= 0 {
		maxMask = rowrange.DefaultMaxMaskLength
	}
	return &Service{
		steps:         steps,
		limiter:       NewRenderLimiter(cfg.MaxConcurrent, cfg.MaxWaitTime),
		maxMaskLength: maxMask,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Limiter exposes the render limiter for health output and shutdown.
func (s *Service) Limiter() *RenderLimiter {
	return s.limiter
}

// Render returns t without the rows p selects. t is never modified; when
// no row is selected the result is t itself.
func (s *Service) Render(ctx context.Context, t *table.Table, p params.Params) (*table.Table, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	if err := t.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	mask, err := rowrange.Parse(p.Rows, t.NumRows())
	if err != nil {
		return nil, err
	}
	out := table.DropRows(t, mask)

	logging.FromContext(ctx).Info("rows dropped",
		"rows_in", t.NumRows(),
		"rows_out", out.NumRows(),
		"dropped", t.NumRows()-out.NumRows(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// RenderStored migrates stored parameters and renders with them.
func (s *Service) RenderStored(ctx context.Context, t *table.Table, stored params.Stored) (*table.Table, error) {
	return s.Render(ctx, t, params.Migrate(stored))
}

// stepLogger returns a logger tagged with the step and the client.
func stepLogger(ctx context.Context, op string, id uuid.UUID) *slog.Logger {
	return logging.WithFields(ctx,
		"op", op,
		"step_id", id,
		"client_ip", ClientFromContext(ctx).IP,
	)
}
