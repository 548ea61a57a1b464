package power

import (
	"StorWatch/internal/pkg/config"
	"StorWatch/internal/pkg/logger"
	"StorWatch/internal/probes/power"
	"StorWatch/internal/websocket"
	"fmt"
	"sync"
	"time"
)

// Monitor drives the power model on the configured interval and publishes
// each reading to WebSocket subscribers.
type Monitor struct {
	config    *config.Config
	model     *Model
	alerts    *AlertHandler
	ticker    *time.Ticker
	stopChan  chan struct{}
	isRunning bool
	mutex     sync.Mutex
}

// NewMonitor creates a power monitor owning the given model.
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
		return fmt.Errorf("power monitor is already running")
	}

	if !m.config.Monitoring.Power.Enabled {
		return fmt.Errorf("power monitoring is disabled in configuration")
	}

	interval := time.Duration(m.config.Monitoring.Power.CheckInterval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	m.ticker = time.NewTicker(interval)
	// A fresh channel each start; the previous one was closed by StopMonitoring
	m.stopChan = make(chan struct{})
	m.isRunning = true

	logger.Info("Starting power monitor",
		logger.Int("interval_seconds", m.config.Monitoring.Power.CheckInterval),
		logger.Float64("warning_threshold", m.config.Monitoring.Power.WarningThreshold),
		logger.Float64("critical_threshold", m.config.Monitoring.Power.CriticalThreshold))

	// The goroutine captures its own ticker and stop channel so a later
	// restart cannot swap them underneath it.
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
	logger.Info("Power monitor stopped")
}

// Model exposes the underlying model to the read-side API handlers.
func (m *Monitor) Model() *Model {
	return m.model
}

// GetConfig returns the monitor's configuration
func (m *Monitor) GetConfig() *config.Config {
	return m.config
}

// sampleOnce performs one sampling cycle.
func (m *Monitor) sampleOnce() {
	m.model.Sample()

	reading, ok := m.model.LatestReading()
	if !ok {
		return
	}

	registry := websocket.GetRegistry()
	if handler := registry.GetPowerHandler(); handler != nil {
		registry.BroadcastPower(broadcastPayload(reading, m.config))
	}

	m.alerts.Evaluate(reading)
}

// broadcastPayload shapes a reading for the WebSocket stream.
func broadcastPayload(r power.Counters, cfg *config.Config) map[string]interface{} {
	return map[string]interface{}{
		"metric_type": "power",
		"metrics_data": map[string]interface{}{
			"state":             r.StateName,
			"on_ac":             r.OnAC,
			"charge_percent":    r.ChargePercent,
			"power_draw_w":      r.PowerDrawW,
			"health_percent":    r.HealthPercent,
			"time_to_empty_sec": r.TimeToEmptySec,
			"time_to_full_sec":  r.TimeToFullSec,
			"status":            determineBatteryStatus(r, cfg),
		},
		"meta": map[string]interface{}{
			"timestamp": time.Now(),
			"source":    "power_monitor",
			"version":   "1.0",
		},
	}
}

// determineBatteryStatus maps a reading onto the configured charge
// thresholds; machines without a battery are always normal.
func determineBatteryStatus(r power.Counters, cfg *config.Config) string {
	if r.State == power.StateNotPresent || r.ChargePercent < 0 {
		return "normal"
	}
	if r.State != power.StateDischarging {
		return "normal"
	}
	if r.ChargePercent <= cfg.Monitoring.Power.CriticalThreshold {
		return "critical"
	} else if r.ChargePercent <= cfg.Monitoring.Power.WarningThreshold {
		return "warning"
	}
	return "normal"
}
