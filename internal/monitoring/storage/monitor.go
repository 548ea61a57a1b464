package storage

import (
	"StorWatch/internal/pkg/config"
	"StorWatch/internal/pkg/logger"
	"StorWatch/internal/websocket"
	"fmt"
	"sync"
	"time"
)

// Monitor drives the storage model on the configured interval and publishes
// each snapshot to WebSocket subscribers. It is the single producer the
// model's Sample contract requires.
type Monitor struct {
	config    *config.Config
	model     *Model
	alerts    *AlertHandler
	ticker    *time.Ticker
	stopChan  chan struct{}
	isRunning bool
	mutex     sync.Mutex
}

// NewMonitor creates a storage monitor owning the given model.
func NewMonitor(cfg *config.Config, model *Model) *Monitor {
	m := &Monitor{
		config:   cfg,
		model:    model,
		stopChan: make(chan struct{}),
	}
	m.alerts = NewAlertHandler(m)
	return m
}

// StartMonitoring begins the periodic sampling loop.
func (m *Monitor) StartMonitoring() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.isRunning {
		return fmt.Errorf("storage monitor is already running")
	}

	if !m.config.Monitoring.Storage.Enabled {
		return fmt.Errorf("storage monitoring is disabled in configuration")
	}

	interval := time.Duration(m.config.Monitoring.Storage.CheckInterval) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	m.ticker = time.NewTicker(interval)
	// A fresh channel each start; the previous one was closed by StopMonitoring
	m.stopChan = make(chan struct{})
	m.isRunning = true

	logger.Info("Starting storage monitor",
		logger.Int("interval_seconds", m.config.Monitoring.Storage.CheckInterval),
		logger.Int("history_window_seconds", m.config.Monitoring.Storage.HistoryWindow),
		logger.Float64("warning_threshold", m.config.Monitoring.Storage.WarningThreshold),
		logger.Float64("critical_threshold", m.config.Monitoring.Storage.CriticalThreshold))

	// Run the first sample immediately, then continue at intervals. The
	// goroutine captures its own ticker and stop channel so a later restart
	// cannot swap them underneath it.
	ticker := m.ticker
	stopChan := m.stopChan
	go func() {
		m.sampleOnce()

		for {
			select {
			case <-ticker.C:
				m.sampleOnce()
			case <-stopChan:
				ticker.Stop()
				return
			}
		}
	}()

	return nil
}

// StopMonitoring halts the sampling loop.
func (m *Monitor) StopMonitoring() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.isRunning {
		return
	}

	close(m.stopChan)
	m.isRunning = false
	logger.Info("Storage monitor stopped")
}

// Model exposes the underlying model to the read-side API handlers.
func (m *Monitor) Model() *Model {
	return m.model
}

// GetConfig returns the monitor's configuration
func (m *Monitor) GetConfig() *config.Config {
	return m.config
}

// sampleOnce performs one sampling cycle: model update, broadcast, alert
// evaluation.
func (m *Monitor) sampleOnce() {
	m.model.Sample()

	snapshot, ok := m.model.LatestSnapshot()
	if !ok {
		return
	}

	registry := websocket.GetRegistry()
	if handler := registry.GetStorageHandler(); handler != nil {
		registry.BroadcastStorage(broadcastPayload(snapshot, m.config))
	}

	m.alerts.Evaluate(snapshot)
}

// broadcastPayload shapes a snapshot for the WebSocket stream.
func broadcastPayload(s Snapshot, cfg *config.Config) map[string]interface{} {
	disks := make([]map[string]interface{}, len(s.Disks))
	for i, d := range s.Disks {
		disks[i] = map[string]interface{}{
			"name":                d.Name,
			"read_bytes_per_sec":  d.ReadBytesPerSec,
			"write_bytes_per_sec": d.WriteBytesPerSec,
			"read_ops_per_sec":    d.ReadOpsPerSec,
			"write_ops_per_sec":   d.WriteOpsPerSec,
			"utilization_percent": d.UtilizationPercent,
			"status":              determineDiskStatus(d.UtilizationPercent, cfg),
		}
	}

	return map[string]interface{}{
		"metric_type": "storage",
		"metrics_data": map[string]interface{}{
			"disks": disks,
			"totals": map[string]interface{}{
				"read_bytes_per_sec":  s.TotalReadBytesPerSec,
				"write_bytes_per_sec": s.TotalWriteBytesPerSec,
				"read_ops_per_sec":    s.TotalReadOpsPerSec,
				"write_ops_per_sec":   s.TotalWriteOpsPerSec,
			},
			"capabilities": s.Capabilities,
		},
		"meta": map[string]interface{}{
			"timestamp": s.Timestamp,
			"source":    "storage_monitor",
			"version":   "1.0",
		},
	}
}

// determineDiskStatus maps a device's busy percentage onto the configured
// thresholds.
func determineDiskStatus(utilizationPercent float64, cfg *config.Config) string {
	if utilizationPercent >= cfg.Monitoring.Storage.CriticalThreshold {
		return "critical"
	} else if utilizationPercent >= cfg.Monitoring.Storage.WarningThreshold {
		return "warning"
	}
	return "normal"
}
