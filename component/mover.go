package component

import (
	"time"

	"github.com/lixenwraith/vi-scene/core"
	"github.com/lixenwraith/vi-scene/engine"
)

// Mover moves its entity by Velocity cells per second and bounces inside Area
type Mover struct {
	engine.ComponentBase

	VelocityX, VelocityY float64
	Area                 core.Area

	accX, accY float64
}

// NewMover creates a mover confined to area
func NewMover(vx, vy float64, area core.Area) *Mover {
	return &Mover{VelocityX: vx, VelocityY: vy, Area: area}
}

func (m *Mover) Update(dt time.Duration) {
	e := m.Entity()
	if e == nil || !m.Enabled() {
		return
	}
	secs := dt.Seconds()
	m.accX += m.VelocityX * secs
	m.accY += m.VelocityY * secs

	stepX, stepY := int(m.accX), int(m.accY)
	m.accX -= float64(stepX)
	m.accY -= float64(stepY)

	next := e.Position.Add(core.Point{X: stepX, Y: stepY})
	if next.X < m.Area.X || next.X >= m.Area.Right() {
		m.VelocityX = -m.VelocityX
		next.X = min(max(next.X, m.Area.X), m.Area.Right()-1)
	}
	if next.Y < m.Area.Y || next.Y >= m.Area.Bottom() {
		m.VelocityY = -m.VelocityY
		next.Y = min(max(next.Y, m.Area.Y), m.Area.Bottom()-1)
	}
	e.Position = next
}
