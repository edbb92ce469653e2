package app

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// WatchGraph tracks which sessions watch which. A watcher observes
// exactly one parent; cycles (including self-watching) are rejected so
// chunk fan-out can never loop.
type WatchGraph struct {
	mu sync.Mutex
	// parent[w] = p means w watches p.
	parent   map[uuid.UUID]uuid.UUID
	watchers map[uuid.UUID][]uuid.UUID
}

func NewWatchGraph() *WatchGraph {
	return &WatchGraph{
		parent:   make(map[uuid.UUID]uuid.UUID),
		watchers: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (g *WatchGraph) AddWatcher(parentID, watcherID uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if parentID == watcherID {
		return fmt.Errorf("session %s cannot watch itself", watcherID)
	}
	if existing, ok := g.parent[watcherID]; ok {
		return fmt.Errorf("session %s already watches %s", watcherID, existing)
	}
	// Walk up from the prospective parent; finding the watcher there
	// would close a cycle.
	for p, ok := parentID, true; ok; p, ok = g.parent[p] {
		if p == watcherID {
			return fmt.Errorf("watching %s would create a cycle", parentID)
		}
	}

	g.parent[watcherID] = parentID
	g.watchers[parentID] = append(g.watchers[parentID], watcherID)
	return nil
}

func (g *WatchGraph) RemoveWatcher(watcherID uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeWatcherLocked(watcherID)
}

func (g *WatchGraph) removeWatcherLocked(watcherID uuid.UUID) {
	parentID, ok := g.parent[watcherID]
	if !ok {
		return
	}
	delete(g.parent, watcherID)

	kept := g.watchers[parentID][:0]
	for _, w := range g.watchers[parentID] {
		if w != watcherID {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		delete(g.watchers, parentID)
	} else {
		g.watchers[parentID] = kept
	}
}

// Watchers returns the sessions watching parentID.
func (g *WatchGraph) Watchers(parentID uuid.UUID) []uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]uuid.UUID, len(g.watchers[parentID]))
	copy(out, g.watchers[parentID])
	return out
}

// Parent returns the session watcherID watches, if any.
func (g *WatchGraph) Parent(watcherID uuid.UUID) (uuid.UUID, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.parent[watcherID]
	return p, ok
}

// CleanupParent detaches every watcher of a session being destroyed.
func (g *WatchGraph) CleanupParent(parentID uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, w := range append([]uuid.UUID(nil), g.watchers[parentID]...) {
		g.removeWatcherLocked(w)
	}
}

// Empty reports whether no watch relationships exist.
func (g *WatchGraph) Empty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.parent) == 0
}
