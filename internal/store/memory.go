package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Memory is a StepStore kept in process memory. It is used when no
// database is configured and in tests.
type Memory struct {
	mu    sync.RWMutex
	steps map[uuid.UUID]Step
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{steps: make(map[uuid.UUID]Step)}
}

func (m *Memory) Get(ctx context.Context, id uuid.UUID) (Step, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	step, ok := m.steps[id]
	if !ok {
		return Step{}, ErrStepNotFound
	}
	step.Params = cloneStored(step.Params)
	return step, nil
}

func (m *Memory) Put(ctx context.Context, step Step) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	step.Params = cloneStored(step.Params)
	m.steps[step.ID] = step
	return nil
}

func (m *Memory) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.steps[id]; !ok {
		return ErrStepNotFound
	}
	delete(m.steps, id)
	return nil
}

func (m *Memory) List(ctx context.Context) ([]Step, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Step, 0, len(m.steps))
	for _, step := range m.steps {
		step.Params = cloneStored(step.Params)
		result = append(result, step)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}
