// Package metrics exposes kernel activity as Prometheus metrics.
package metrics

import "runtime"

// MemorySnapshot is the part of the runtime heap state that large
// products move.
type MemorySnapshot struct {
	HeapAlloc   uint64
	HeapObjects uint64
	NumGC       uint32
}

// MemoryCollector reads heap statistics for the kernel collector.
type MemoryCollector struct {
	read func(*runtime.MemStats)
}

// NewMemoryCollector returns a collector backed by runtime.ReadMemStats.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{read: runtime.ReadMemStats}
}

// Snapshot reads the current heap state.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	mc.read(&m)
	return MemorySnapshot{HeapAlloc: m.HeapAlloc, HeapObjects: m.HeapObjects, NumGC: m.NumGC}
}
