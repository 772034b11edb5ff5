package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testComponent struct {
	ComponentBase
	name string
}

type recorder struct {
	added   []Component
	removed []Component
}

func (r *recorder) ComponentAdded(c Component)   { r.added = append(r.added, c) }
func (r *recorder) ComponentRemoved(c Component) { r.removed = append(r.removed, c) }

func TestWorldEntitiesInCreationOrder(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity("a")
	b := w.CreateEntity("b")
	c := w.CreateEntity("c")

	w.DestroyEntity(a)
	d := w.CreateEntity("d")

	assert.Equal(t, []*Entity{b, c, d}, w.Entities())
	assert.Equal(t, 3, w.Count())

	found, ok := w.FindEntity("c")
	require.True(t, ok)
	assert.Same(t, c, found)
}

func TestWorldComponentLifecycle(t *testing.T) {
	w := NewWorld()
	rec := &recorder{}
	w.Observe(rec)

	e := w.CreateEntity("player")
	c1 := &testComponent{name: "one"}
	c2 := &testComponent{name: "two"}
	w.AddComponent(e, c1)
	w.AddComponent(e, c2)

	assert.Same(t, e, c1.Entity())
	assert.Len(t, rec.added, 2)

	got, ok := GetComponent[*testComponent](e)
	require.True(t, ok)
	assert.Same(t, c1, got)

	w.RemoveComponent(e, c1)
	assert.Nil(t, c1.Entity())
	assert.Equal(t, []Component{c2}, e.Components())

	w.DestroyEntity(e)
	assert.Len(t, rec.removed, 2)
	assert.Equal(t, 0, w.Count())
}

func TestComponentEnabledFollowsEntity(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity("e")
	c := &testComponent{}
	w.AddComponent(e, c)

	assert.True(t, c.Enabled())
	e.Enabled = false
	assert.False(t, c.Enabled())
	e.Enabled = true
	c.SetEnabled(false)
	assert.False(t, c.Enabled())
}

func TestWorldClearResetsIDs(t *testing.T) {
	w := NewWorld()
	rec := &recorder{}
	w.Observe(rec)
	a := w.CreateEntity("a")
	w.CreateEntity("b")
	c := &testComponent{}
	w.AddComponent(a, c)
	w.Clear()

	assert.Equal(t, 0, w.Count())
	assert.Empty(t, w.Entities())
	assert.Equal(t, []Component{c}, rec.removed)
	assert.Nil(t, c.Entity())
	assert.EqualValues(t, 1, w.CreateEntity("c").ID)
}
