// Package debounce collapses bursts of calls that share a key into the last one.
package debounce

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned by Do when a newer call with the same key
// arrived before the quiet period elapsed.
var ErrSuperseded = errors.New("debounce: superseded by a newer call")

// Group debounces calls per key. The zero value is not usable; use New.
type Group struct {
	delay time.Duration

	mu     sync.Mutex
	next   uint64
	latest map[string]uint64
}

// New creates a Group with the given quiet period.
func New(delay time.Duration) *Group {
	return &Group{delay: delay, latest: make(map[string]uint64)}
}

// Do waits for the quiet period and then runs fn, unless another Do with the
// same key started in the meantime, in which case it returns ErrSuperseded.
// If ctx ends first, Do returns ctx.Err() and fn is not run.
func (g *Group) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	g.mu.Lock()
	g.next++
	id := g.next
	g.latest[key] = id
	g.mu.Unlock()

	timer := time.NewTimer(g.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		g.release(key, id)
		return ctx.Err()
	case <-timer.C:
	}

	if !g.release(key, id) {
		return ErrSuperseded
	}
	return fn(ctx)
}

// release forgets key if id is still its latest call and reports whether it was.
func (g *Group) release(key string, id uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.latest[key] != id {
		return false
	}
	delete(g.latest, key)
	return true
}
