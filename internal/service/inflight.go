package service

import "sync"

// inflightGuard serializes each mutation surface: while a submission is
// outstanding for a key, further submissions on that key are refused, never
// queued.
type inflightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{active: make(map[string]struct{})}
}

// acquire marks the key busy. It reports false when already busy.
func (g *inflightGuard) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.active[key]; ok {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

// release clears the key.
func (g *inflightGuard) release(key string) {
	g.mu.Lock()
	delete(g.active, key)
	g.mu.Unlock()
}
