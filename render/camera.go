package render

import "github.com/lixenwraith/vi-scene/core"

// Camera maps world coordinates to render target coordinates
// Position is the world coordinate shown at the viewport top-left
type Camera struct {
	Position core.Point

	width  int
	height int
}

// NewCamera creates a camera at the world origin with the given viewport size
func NewCamera(width, height int) *Camera {
	return &Camera{width: width, height: height}
}

// Size returns viewport dimensions
func (c *Camera) Size() (int, int) {
	return c.width, c.height
}

// SetSize changes viewport dimensions
func (c *Camera) SetSize(width, height int) {
	c.width = max(width, 0)
	c.height = max(height, 0)
}

// OnSceneTargetSizeChanged follows the scene render target size
func (c *Camera) OnSceneTargetSizeChanged(width, height int) {
	c.SetSize(width, height)
}

// Bounds returns the visible world area
func (c *Camera) Bounds() core.Area {
	return core.Area{X: c.Position.X, Y: c.Position.Y, Width: c.width, Height: c.height}
}

// WorldToScreen converts a world coordinate to target coordinates
// A nil camera is the identity transform
func (c *Camera) WorldToScreen(p core.Point) core.Point {
	if c == nil {
		return p
	}
	return p.Sub(c.Position)
}

// ScreenToWorld converts target coordinates to a world coordinate
func (c *Camera) ScreenToWorld(p core.Point) core.Point {
	if c == nil {
		return p
	}
	return p.Add(c.Position)
}

// IsVisible reports whether any part of the world area is inside the viewport
func (c *Camera) IsVisible(a core.Area) bool {
	if c == nil {
		return true
	}
	return c.Bounds().Intersects(a)
}

// CenterOn positions the camera so p is centered, clamped to world bounds
// When world <= viewport on an axis, that axis is pinned to the world origin
func (c *Camera) CenterOn(p core.Point, world core.Area) {
	c.Position.X = clampAxis(p.X-c.width/2, world.X, world.Width, c.width)
	c.Position.Y = clampAxis(p.Y-c.height/2, world.Y, world.Height, c.height)
}

func clampAxis(v, origin, worldDim, viewDim int) int {
	if worldDim <= viewDim {
		return origin
	}
	if v < origin {
		return origin
	}
	if limit := origin + worldDim - viewDim; v > limit {
		return limit
	}
	return v
}
