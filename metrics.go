package gridkit

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see examples/observability).
type MetricsCollector interface {
	// RecordAdd is called after each add. err is nil if the item was placed.
	RecordAdd(duration time.Duration, err error)

	// RecordRemove is called after each remove. removed is false when the
	// index was empty or invalid.
	RecordRemove(duration time.Duration, removed bool)

	// RecordNeighbors is called after each neighbor query with the number
	// of occupied cells found.
	RecordNeighbors(diagonal bool, found int, duration time.Duration)

	// RecordSnapshot is called after each save with the snapshot size.
	RecordSnapshot(bytes int64, duration time.Duration, err error)

	// RecordRestore is called after each load with the number of restored items.
	RecordRestore(items int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(time.Duration, error)             {}
func (NoopMetricsCollector) RecordRemove(time.Duration, bool)           {}
func (NoopMetricsCollector) RecordNeighbors(bool, int, time.Duration)   {}
func (NoopMetricsCollector) RecordSnapshot(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordRestore(int, time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount            atomic.Int64
	AddErrors           atomic.Int64
	AddTotalNanos       atomic.Int64
	RemoveCount         atomic.Int64
	RemoveMisses        atomic.Int64
	NeighborsCount      atomic.Int64
	NeighborsFound      atomic.Int64
	NeighborsTotalNanos atomic.Int64
	SnapshotCount       atomic.Int64
	SnapshotErrors      atomic.Int64
	SnapshotBytes       atomic.Int64
	RestoreCount        atomic.Int64
	RestoreErrors       atomic.Int64
	RestoreItems        atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(duration time.Duration, err error) {
	b.AddCount.Add(1)
	b.AddTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(_ time.Duration, removed bool) {
	b.RemoveCount.Add(1)
	if !removed {
		b.RemoveMisses.Add(1)
	}
}

// RecordNeighbors implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNeighbors(_ bool, found int, duration time.Duration) {
	b.NeighborsCount.Add(1)
	b.NeighborsFound.Add(int64(found))
	b.NeighborsTotalNanos.Add(duration.Nanoseconds())
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(bytes int64, _ time.Duration, err error) {
	b.SnapshotCount.Add(1)
	if err != nil {
		b.SnapshotErrors.Add(1)
		return
	}
	b.SnapshotBytes.Add(bytes)
}

// RecordRestore implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRestore(items int, _ time.Duration, err error) {
	b.RestoreCount.Add(1)
	if err != nil {
		b.RestoreErrors.Add(1)
		return
	}
	b.RestoreItems.Add(int64(items))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:          b.AddCount.Load(),
		AddErrors:         b.AddErrors.Load(),
		AddAvgNanos:       avg(b.AddTotalNanos.Load(), b.AddCount.Load()),
		RemoveCount:       b.RemoveCount.Load(),
		RemoveMisses:      b.RemoveMisses.Load(),
		NeighborsCount:    b.NeighborsCount.Load(),
		NeighborsFound:    b.NeighborsFound.Load(),
		NeighborsAvgNanos: avg(b.NeighborsTotalNanos.Load(), b.NeighborsCount.Load()),
		SnapshotCount:     b.SnapshotCount.Load(),
		SnapshotErrors:    b.SnapshotErrors.Load(),
		SnapshotBytes:     b.SnapshotBytes.Load(),
		RestoreCount:      b.RestoreCount.Load(),
		RestoreErrors:     b.RestoreErrors.Load(),
		RestoreItems:      b.RestoreItems.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount          int64
	AddErrors         int64
	AddAvgNanos       int64
	RemoveCount       int64
	RemoveMisses      int64
	NeighborsCount    int64
	NeighborsFound    int64
	NeighborsAvgNanos int64
	SnapshotCount     int64
	SnapshotErrors    int64
	SnapshotBytes     int64
	RestoreCount      int64
	RestoreErrors     int64
	RestoreItems      int64
}
