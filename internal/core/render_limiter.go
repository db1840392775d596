package core

// render_limiter.go bounds the number of renders running at once.
//
// A render holds a whole table plus its output in memory, so the host caps
// parallel renders. When all slots are taken, new requests wait up to
// maxWait before failing with ErrTooManyRenders. WaitForDrain lets shutdown
// block until in-flight renders finish.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyRenders is returned when no render slot frees up within the
// wait timeout. Clients should retry after a short delay.
var ErrTooManyRenders = errors.New("too many concurrent renders")

// DefaultMaxConcurrentRenders is used when the configured limit is not positive.
const DefaultMaxConcurrentRenders = 5

// DefaultMaxWaitTime is how long to wait for a slot before rejecting.
const DefaultMaxWaitTime = 30 * time.Second

// RenderLimiter is a counting semaphore with a bounded wait.
type RenderLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu     sync.RWMutex
	active int
}

// NewRenderLimiter allows at most maxConcurrent renders at once.
func NewRenderLimiter(maxConcurrent int, maxWait time.Duration) *RenderLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentRenders
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}
	return &RenderLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot, waiting up to the limiter's maxWait. It returns
// ctx.Err() if ctx ends first. Callers must Release after a nil return.
func (l *RenderLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyRenders
	}
}

// TryAcquire takes a slot only if one is free.
func (l *RenderLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return true
	default:
		return false
	}
}

// Release frees a slot taken by Acquire or TryAcquire.
func (l *RenderLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
	<-l.slots
}

// ActiveCount returns the number of renders in progress.
func (l *RenderLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// WaitForDrain blocks until no render is active or ctx ends.
func (l *RenderLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RenderLimiterStatus is a snapshot for health output.
type RenderLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"maxConcurrent"`
}

// Status returns the current limiter state.
func (l *RenderLimiter) Status() RenderLimiterStatus {
	active := l.ActiveCount()
	return RenderLimiterStatus{
		Active:        active,
		Available:     cap(l.slots) - len(l.slots),
		MaxConcurrent: cap(l.slots),
	}
}
