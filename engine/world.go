package engine

import (
	"slices"
	"sync"

	"github.com/lixenwraith/vi-scene/core"
)

// ComponentObserver receives component lifecycle notifications from the world
type ComponentObserver interface {
	ComponentAdded(c Component)
	ComponentRemoved(c Component)
}

// World contains all entities of a scene
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity
	entities     *Store[*Entity]
	observers    []ComponentObserver

	updateMutex sync.Mutex
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		nextEntityID: 1,
		entities:     NewStore[*Entity](),
	}
}

// Observe registers an observer for component add/remove
func (w *World) Observe(o ComponentObserver) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.observers = append(w.observers, o)
}

// CreateEntity reserves a new enabled entity
func (w *World) CreateEntity(name string) *Entity {
	w.mu.Lock()
	id := w.nextEntityID
	w.nextEntityID++
	w.mu.Unlock()

	e := &Entity{ID: id, Name: name, Enabled: true}
	w.entities.Set(id, e)
	return e
}

// Entity looks up an entity by id
func (w *World) Entity(id core.Entity) (*Entity, bool) {
	return w.entities.Get(id)
}

// FindEntity returns the first entity with the given name in creation order
func (w *World) FindEntity(name string) (*Entity, bool) {
	for _, e := range w.Entities() {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Entities returns all entities in creation order
func (w *World) Entities() []*Entity {
	return w.entities.Values()
}

// Count returns the number of live entities
func (w *World) Count() int {
	return w.entities.Count()
}

// AddComponent attaches c to e and notifies observers
func (w *World) AddComponent(e *Entity, c Component) {
	c.Attach(e)
	e.components = append(e.components, c)
	for _, o := range w.snapshotObservers() {
		o.ComponentAdded(c)
	}
}

// RemoveComponent detaches c from e, no-op if not attached
func (w *World) RemoveComponent(e *Entity, c Component) {
	idx := slices.Index(e.components, c)
	if idx < 0 {
		return
	}
	e.components = slices.Delete(e.components, idx, idx+1)
	for _, o := range w.snapshotObservers() {
		o.ComponentRemoved(c)
	}
	c.Attach(nil)
}

// DestroyEntity removes the entity and all its components
func (w *World) DestroyEntity(e *Entity) {
	w.detachAll(e)
	w.entities.Remove(e.ID)
}

// detachAll removes components last added first
func (w *World) detachAll(e *Entity) {
	for i := len(e.components) - 1; i >= 0; i-- {
		w.RemoveComponent(e, e.components[i])
	}
}

// Clear destroys all entities
func (w *World) Clear() {
	for _, e := range w.Entities() {
		w.detachAll(e)
	}
	w.entities.Clear()
	w.mu.Lock()
	w.nextEntityID = 1
	w.mu.Unlock()
}

func (w *World) snapshotObservers() []ComponentObserver {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.observers)
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Lock acquires the world's update mutex
func (w *World) Lock() {
	w.updateMutex.Lock()
}

// Unlock releases the update mutex
func (w *World) Unlock() {
	w.updateMutex.Unlock()
}
