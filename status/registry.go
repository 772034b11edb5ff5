// Package status keeps frame and pipeline counters readable from any goroutine.
package status

import "sync/atomic"

// Registry groups counters and gauges by name
// The render loop caches pointers once and writes atomics directly
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Count returns the number of registered metrics
func (r *Registry) Count() int {
	return r.Ints.Count() + r.Floats.Count()
}

// Snapshot copies every metric into a flat map, ints converted to float64
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, r.Count())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out[k] = float64(v.Load())
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out[k] = v.Get()
	})
	return out
}
