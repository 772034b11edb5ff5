package status

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMapGetCachesPointer(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	a := m.Get("frames")
	a.Add(3)

	assert.Same(t, a, m.Get("frames"))
	assert.Equal(t, int64(3), m.Get("frames").Load())
	assert.True(t, m.Has("frames"))
	assert.False(t, m.Has("batches"))
	assert.Equal(t, 1, m.Count())
}

func TestMetricMapRangeSorted(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	m.Get("c")
	m.Get("a")
	m.Get("b")

	var keys []string
	m.Range(func(k string, _ *atomic.Int64) { keys = append(keys, k) })
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestAtomicFloatConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400.0, f.Get())

	f.Set(1.25)
	assert.Equal(t, 1.25, f.Get())
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("render.frames").Store(7)
	r.Floats.Get("render.frame_ms").Set(2.5)

	assert.Equal(t, 2, r.Count())
	assert.Equal(t, map[string]float64{
		"render.frames":   7,
		"render.frame_ms": 2.5,
	}, r.Snapshot())
}
