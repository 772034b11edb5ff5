package component

import (
	"github.com/lixenwraith/vi-scene/core"
	"github.com/lixenwraith/vi-scene/engine"
	"github.com/lixenwraith/vi-scene/render"
	"github.com/lixenwraith/vi-scene/terminal"
)

var colliderColor = terminal.RGB{R: 0, G: 255, B: 64}

// Collider is a hit box relative to its entity, visible only as a debug overlay
type Collider struct {
	engine.ComponentBase

	Shape core.Area // relative to entity position
}

// NewCollider creates a collider with the given local shape
func NewCollider(shape core.Area) *Collider {
	return &Collider{Shape: shape}
}

// Bounds returns the collider in world coordinates
func (c *Collider) Bounds() core.Area {
	return c.Shape.Offset(c.Position())
}

// Overlaps reports whether two colliders intersect in world space
func (c *Collider) Overlaps(other *Collider) bool {
	return c.Bounds().Intersects(other.Bounds())
}

func (c *Collider) DebugRender(b *render.Batcher) {
	b.DrawHollowRect(c.Bounds(), colliderColor)
}
