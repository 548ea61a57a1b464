package storage

import (
	"StorWatch/internal/pkg/logger"
	"StorWatch/internal/probes/disk"
	"sync"
	"time"
)

// deviceState is the retained previous reading for one device, used to
// compute rates on the next sampling cycle. Entries are created lazily on
// first sight of a device name and kept for the model's lifetime; a device
// that disappears simply stops being updated.
type deviceState struct {
	prev     disk.Counters
	prevTime time.Time
	hasPrev  bool
}

// Model owns the per-device delta state, derives rate snapshots from
// successive probe readings and keeps a time-bounded history of them.
//
// Sample is meant to be driven from a single background producer; the read
// accessors are safe to call concurrently with it and with each other, and
// always return copies.
type Model struct {
	probe disk.Probe
	now   func() time.Time

	// owned exclusively by the producer calling Sample
	states map[string]*deviceState

	mu                sync.RWMutex
	latest            Snapshot
	hasLatest         bool
	timestamps        []time.Time
	history           []Snapshot
	readRateHistory   []float64
	writeRateHistory  []float64
	maxHistorySeconds int
}

// NewModel creates a model over the given probe. The probe may be nil, in
// which case Sample degrades to a logged no-op.
func NewModel(probe disk.Probe, historyWindowSeconds int) *Model {
	if historyWindowSeconds <= 0 {
		historyWindowSeconds = 300
	}
	return &Model{
		probe:             probe,
		now:               time.Now,
		states:            make(map[string]*deviceState),
		maxHistorySeconds: historyWindowSeconds,
	}
}

// Sample reads the probe once, derives a snapshot and publishes it. Only the
// final publish step takes the write lock; the probe read and the per-device
// computation happen outside it.
func (m *Model) Sample() {
	if m.probe == nil {
		logger.Warn("Storage model sampled without a probe")
		return
	}

	reading := m.probe.Read()
	now := m.now()
	snapshot := m.derive(reading, now)

	m.mu.Lock()
	m.latest = snapshot
	m.hasLatest = true
	m.timestamps = append(m.timestamps, now)
	m.history = append(m.history, snapshot)
	m.readRateHistory = append(m.readRateHistory, snapshot.TotalReadBytesPerSec)
	m.writeRateHistory = append(m.writeRateHistory, snapshot.TotalWriteBytesPerSec)
	m.trimLocked(now)
	m.mu.Unlock()
}

// derive computes the full snapshot for one reading, updating the per-device
// delta state as it goes.
func (m *Model) derive(reading disk.SystemCounters, now time.Time) Snapshot {
	snapshot := Snapshot{
		Timestamp:    now,
		Capabilities: m.probe.Capabilities(),
		Disks:        make([]DiskSnapshot, 0, len(reading.Devices)),
	}

	for _, counters := range reading.Devices {
		state, ok := m.states[counters.Name]
		if !ok {
			state = &deviceState{}
			m.states[counters.Name] = state
		}

		ds := deriveDisk(counters, state, now)
		state.prev = counters
		state.prevTime = now
		state.hasPrev = true

		snapshot.TotalReadBytesPerSec += ds.ReadBytesPerSec
		snapshot.TotalWriteBytesPerSec += ds.WriteBytesPerSec
		snapshot.TotalReadOpsPerSec += ds.ReadOpsPerSec
		snapshot.TotalWriteOpsPerSec += ds.WriteOpsPerSec
		snapshot.Disks = append(snapshot.Disks, ds)
	}

	return snapshot
}

// deriveDisk applies the delta algorithm for one device. Without a previous
// sample, or with a non-positive elapsed time, only the cumulative totals
// are populated.
func deriveDisk(c disk.Counters, state *deviceState, now time.Time) DiskSnapshot {
	ds := DiskSnapshot{
		Name:             c.Name,
		Physical:         c.Physical,
		TotalReads:       c.ReadsCompleted,
		TotalWrites:      c.WritesCompleted,
		TotalReadBytes:   c.SectorsRead * c.SectorSize,
		TotalWriteBytes:  c.SectorsWritten * c.SectorSize,
		IOInProgress:     c.IOInProgress,
		TotalIOTimeMs:    c.IOTimeMs,
		WeightedIOTimeMs: c.WeightedIOTimeMs,
	}

	if !state.hasPrev {
		return ds
	}
	elapsed := now.Sub(state.prevTime).Seconds()
	if elapsed <= 0 {
		return ds
	}

	readOps := satSub(c.ReadsCompleted, state.prev.ReadsCompleted)
	writeOps := satSub(c.WritesCompleted, state.prev.WritesCompleted)
	readBytes := satSub(c.SectorsRead, state.prev.SectorsRead) * c.SectorSize
	writeBytes := satSub(c.SectorsWritten, state.prev.SectorsWritten) * c.SectorSize
	readTime := satSub(c.ReadTimeMs, state.prev.ReadTimeMs)
	writeTime := satSub(c.WriteTimeMs, state.prev.WriteTimeMs)
	activeTime := satSub(c.IOTimeMs, state.prev.IOTimeMs)

	ds.ReadBytesPerSec = float64(readBytes) / elapsed
	ds.WriteBytesPerSec = float64(writeBytes) / elapsed
	ds.ReadOpsPerSec = float64(readOps) / elapsed
	ds.WriteOpsPerSec = float64(writeOps) / elapsed

	if readOps > 0 {
		ds.AvgReadLatencyMs = float64(readTime) / float64(readOps)
	}
	if writeOps > 0 {
		ds.AvgWriteLatencyMs = float64(writeTime) / float64(writeOps)
	}

	utilization := float64(activeTime) / (elapsed * 1000) * 100
	if utilization < 0 {
		utilization = 0
	}
	if utilization > 100 {
		utilization = 100
	}
	ds.UtilizationPercent = utilization

	return ds
}

// satSub is a floor-at-zero subtraction tolerating counter resets and
// device disconnect/reconnect cycles.
func satSub(curr, prev uint64) uint64 {
	if curr < prev {
		return 0
	}
	return curr - prev
}

// trimLocked evicts history entries older than the retention window. Called
// with the write lock held.
func (m *Model) trimLocked(now time.Time) {
	window := time.Duration(m.maxHistorySeconds) * time.Second
	drop := 0
	for drop < len(m.timestamps) && now.Sub(m.timestamps[drop]) > window {
		drop++
	}
	if drop == 0 {
		return
	}
	m.timestamps = m.timestamps[drop:]
	m.history = m.history[drop:]
	m.readRateHistory = m.readRateHistory[drop:]
	m.writeRateHistory = m.writeRateHistory[drop:]
}

// LatestSnapshot returns a copy of the most recently published snapshot.
// The second result is false before the first successful Sample.
func (m *Model) LatestSnapshot() (Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.hasLatest {
		return Snapshot{}, false
	}
	return m.latest.clone(), true
}

// History returns a copy of the retained snapshots, oldest first.
func (m *Model) History() []Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Snapshot, len(m.history))
	for i, s := range m.history {
		out[i] = s.clone()
	}
	return out
}

// HistoryTimestamps returns a copy of the timestamps matching History.
func (m *Model) HistoryTimestamps() []time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]time.Time, len(m.timestamps))
	copy(out, m.timestamps)
	return out
}

// TotalReadHistory returns the system-wide read rate series matching
// HistoryTimestamps.
func (m *Model) TotalReadHistory() []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]float64, len(m.readRateHistory))
	copy(out, m.readRateHistory)
	return out
}

// TotalWriteHistory returns the system-wide write rate series matching
// HistoryTimestamps.
func (m *Model) TotalWriteHistory() []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]float64, len(m.writeRateHistory))
	copy(out, m.writeRateHistory)
	return out
}

// SetMaxHistorySeconds reconfigures the retention window. It takes effect on
// the next trim.
func (m *Model) SetMaxHistorySeconds(seconds int) {
	if seconds <= 0 {
		return
	}
	m.mu.Lock()
	m.maxHistorySeconds = seconds
	m.mu.Unlock()
}

// Capabilities passes through the probe's capability flags, or a default
// all-false set when no probe was supplied.
func (m *Model) Capabilities() disk.Capabilities {
	if m.probe == nil {
		return disk.Capabilities{}
	}
	return m.probe.Capabilities()
}
