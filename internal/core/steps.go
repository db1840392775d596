package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/droprows/internal/params"
	"github.com/JonMunkholm/droprows/internal/store"
	"github.com/JonMunkholm/droprows/internal/table"
	"github.com/google/uuid"
)

// CreateStep saves a new step. Legacy parameter shapes are migrated before
// saving. The rows spec is not validated; problems surface on render.
func (s *Service) CreateStep(ctx context.Context, stored params.Stored) (store.Step, error) {
	now := s.now()
	step := store.Step{
		ID:        uuid.New(),
		Params:    params.Migrate(stored).Stored(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.steps.Put(ctx, step); err != nil {
		return store.Step{}, fmt.Errorf("create step: %w", err)
	}

	stepLogger(ctx, "create", step.ID).Info("step created", "rows", step.Params.Rows)
	return step, nil
}

// GetStep loads a step in the current parameter shape. A step still stored
// in a legacy shape is migrated and written back, so later loads read the
// current shape directly.
func (s *Service) GetStep(ctx context.Context, id uuid.UUID) (store.Step, error) {
	step, err := s.steps.Get(ctx, id)
	if err != nil {
		return store.Step{}, fmt.Errorf("get step %s: %w", id, err)
	}
	if !step.Params.NeedsMigration() {
		return step, nil
	}

	before := step.Params
	step.Params = params.Migrate(before).Stored()
	step.UpdatedAt = s.now()
	if err := s.steps.Put(ctx, step); err != nil {
		return store.Step{}, fmt.Errorf("write migrated step %s: %w", id, err)
	}

	stepLogger(ctx, "migrate", id).Info("step params migrated",
		"from_version", before.Version,
		"rows", step.Params.Rows,
	)
	return step, nil
}

// ListSteps returns every step, oldest first, in the current parameter
// shape. Unlike GetStep it does not write migrations back.
func (s *Service) ListSteps(ctx context.Context) ([]store.Step, error) {
	steps, err := s.steps.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	for i := range steps {
		if steps[i].Params.NeedsMigration() {
			steps[i].Params = params.Migrate(steps[i].Params).Stored()
		}
	}
	return steps, nil
}

// UpdateStep replaces a step's parameters.
func (s *Service) UpdateStep(ctx context.Context, id uuid.UUID, stored params.Stored) (store.Step, error) {
	step, err := s.steps.Get(ctx, id)
	if err != nil {
		return store.Step{}, fmt.Errorf("update step %s: %w", id, err)
	}

	step.Params = params.Migrate(stored).Stored()
	step.UpdatedAt = s.now()
	if err := s.steps.Put(ctx, step); err != nil {
		return store.Step{}, fmt.Errorf("update step %s: %w", id, err)
	}

	stepLogger(ctx, "update", id).Info("step updated", "rows", step.Params.Rows)
	return step, nil
}

// DeleteStep removes a step.
func (s *Service) DeleteStep(ctx context.Context, id uuid.UUID) error {
	if err := s.steps.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete step %s: %w", id, err)
	}
	stepLogger(ctx, "delete", id).Info("step deleted")
	return nil
}

// SelectRows merges a selection into a step's rows, as when a user picks
// rows in a table view. With fromInput the selection numbers rows of the
// step's input; otherwise it numbers rows of the step's current output.
func (s *Service) SelectRows(ctx context.Context, id uuid.UUID, addRows string, fromInput bool) (store.Step, error) {
	step, err := s.steps.Get(ctx, id)
	if err != nil {
		return store.Step{}, fmt.Errorf("select rows on step %s: %w", id, err)
	}

	merged, err := params.AddSelectedRows(step.Params, addRows, fromInput, s.maxMaskLength)
	if err != nil {
		return store.Step{}, err
	}

	step.Params = merged.Stored()
	step.UpdatedAt = s.now()
	if err := s.steps.Put(ctx, step); err != nil {
		return store.Step{}, fmt.Errorf("select rows on step %s: %w", id, err)
	}

	stepLogger(ctx, "select", id).Info("rows selected",
		"added", addRows,
		"from_input", fromInput,
		"rows", step.Params.Rows,
	)
	return step, nil
}

// RenderStep renders t with a saved step's parameters.
func (s *Service) RenderStep(ctx context.Context, id uuid.UUID, t *table.Table) (*table.Table, error) {
	step, err := s.GetStep(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Render(ctx, t, params.Migrate(step.Params))
}
