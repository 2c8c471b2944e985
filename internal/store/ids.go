package store

import "sync"

// idGenerator hands out increasing ids per entity kind, starting at 1.
type idGenerator struct {
	mu     sync.Mutex
	perKey map[string]int64
}

func newIDGenerator() *idGenerator {
	return &idGenerator{perKey: make(map[string]int64)}
}

func (g *idGenerator) next(kind string) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.perKey[kind]++
	return g.perKey[kind]
}
