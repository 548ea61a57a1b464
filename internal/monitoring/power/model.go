package power

import (
	"StorWatch/internal/pkg/logger"
	"StorWatch/internal/probes/power"
	"sync"
	"time"
)

// Point is one retained history entry of the charge level and draw.
type Point struct {
	Timestamp     time.Time `json:"timestamp"`
	ChargePercent float64   `json:"charge_percent"`
	PowerDrawW    float64   `json:"power_draw_w"`
}

// Model keeps the latest battery reading and a time-bounded history of
// charge level and power draw. Same publish/consume discipline as the
// storage model: one producer calls Sample, readers get copies.
type Model struct {
	probe power.Probe

	mu                sync.RWMutex
	latest            power.Counters
	hasLatest         bool
	history           []Point
	maxHistorySeconds int
}

// NewModel creates a model over the given probe. A nil probe makes Sample a
// logged no-op.
func NewModel(probe power.Probe, historyWindowSeconds int) *Model {
	if historyWindowSeconds <= 0 {
		historyWindowSeconds = 600
	}
	return &Model{
		probe:             probe,
		maxHistorySeconds: historyWindowSeconds,
	}
}

// Sample reads the probe once and publishes the reading.
func (m *Model) Sample() {
	if m.probe == nil {
		logger.Warn("Power model sampled without a probe")
		return
	}

	reading := m.probe.Read()
	now := time.Now()

	m.mu.Lock()
	m.latest = reading
	m.hasLatest = true
	m.history = append(m.history, Point{
		Timestamp:     now,
		ChargePercent: reading.ChargePercent,
		PowerDrawW:    reading.PowerDrawW,
	})
	m.trimLocked(now)
	m.mu.Unlock()
}

// trimLocked evicts entries older than the retention window.
func (m *Model) trimLocked(now time.Time) {
	window := time.Duration(m.maxHistorySeconds) * time.Second
	drop := 0
	for drop < len(m.history) && now.Sub(m.history[drop].Timestamp) > window {
		drop++
	}
	if drop > 0 {
		m.history = m.history[drop:]
	}
}

// LatestReading returns a copy of the most recent reading. The second
// result is false before the first Sample.
func (m *Model) LatestReading() (power.Counters, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest, m.hasLatest
}

// History returns a copy of the retained points, oldest first.
func (m *Model) History() []Point {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Point, len(m.history))
	copy(out, m.history)
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

// Capabilities passes through the probe's capability flags, or a
// default-false set when no probe was supplied.
func (m *Model) Capabilities() power.Capabilities {
	if m.probe == nil {
		return power.Capabilities{}
	}
	return m.probe.Capabilities()
}
