package engine

import (
	"time"

	"github.com/lixenwraith/vi-scene/core"
)

// Component is attached to exactly one entity at a time
type Component interface {
	// Attach binds the component to its owner, nil detaches
	Attach(e *Entity)
	Entity() *Entity
	Enabled() bool
}

// Updatable is implemented by components with per-frame logic
type Updatable interface {
	Update(dt time.Duration)
}

// ComponentBase provides entity binding and the enabled switch for components
type ComponentBase struct {
	entity   *Entity
	disabled bool
}

func (c *ComponentBase) Attach(e *Entity) {
	c.entity = e
}

func (c *ComponentBase) Entity() *Entity {
	return c.entity
}

// Enabled is false when the component or its owning entity is disabled
func (c *ComponentBase) Enabled() bool {
	if c.disabled {
		return false
	}
	return c.entity == nil || c.entity.Enabled
}

// SetEnabled toggles the component independently of its entity
func (c *ComponentBase) SetEnabled(enabled bool) {
	c.disabled = !enabled
}

// Position returns the owner position, origin when detached
func (c *ComponentBase) Position() core.Point {
	if c.entity == nil {
		return core.Point{}
	}
	return c.entity.Position
}

// Entity is a positioned game object owning a list of components
type Entity struct {
	ID       core.Entity
	Name     string
	Position core.Point
	Enabled  bool

	components []Component
}

// Components returns a copy of the attached components in attach order
func (e *Entity) Components() []Component {
	result := make([]Component, len(e.components))
	copy(result, e.components)
	return result
}

// GetComponent returns the first component of type T
func GetComponent[T Component](e *Entity) (T, bool) {
	for _, c := range e.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
