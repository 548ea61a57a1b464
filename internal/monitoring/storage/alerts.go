package storage

import (
	"StorWatch/internal/alerts"
	"StorWatch/internal/pkg/logger"
	"fmt"
	"time"
)

// AlertHandler raises email alerts when device utilization crosses the
// configured thresholds. It implements alerts.ConfigProvider so the shared
// throttling logic can read its state.
type AlertHandler struct {
	monitor       *Monitor
	handler       *alerts.Handler
	notifier      alerts.NotificationManager
	lastStatus    string
	lastAlertTime time.Time
}

// NewAlertHandler creates the alert handler for a storage monitor.
func NewAlertHandler(monitor *Monitor) *AlertHandler {
	a := &AlertHandler{
		monitor:    monitor,
		notifier:   alerts.NewEmailNotifier(monitor.GetConfig()),
		lastStatus: "normal",
	}
	a.handler = alerts.NewHandler(a, nil)
	return a
}

// Evaluate inspects a published snapshot and sends notifications when the
// busiest device changes status or stays above a threshold.
func (a *AlertHandler) Evaluate(snapshot Snapshot) {
	cfg := a.monitor.GetConfig()

	var busiest DiskSnapshot
	for _, d := range snapshot.Disks {
		if d.UtilizationPercent > busiest.UtilizationPercent {
			busiest = d
		}
	}

	status := determineDiskStatus(busiest.UtilizationPercent, cfg)
	statusChanged := status != a.lastStatus
	a.lastStatus = status

	if status == "normal" {
		return
	}

	alertType := alerts.AlertTypeWarning
	counter := &a.handler.SuppressedWarningCount
	if status == "critical" {
		alertType = alerts.AlertTypeCritical
		counter = &a.handler.SuppressedCriticalCount
	}

	if a.handler.ShouldThrottleAlert(statusChanged, counter, alertType) {
		return
	}
	a.lastAlertTime = time.Now()

	style := a.handler.GetAlertStyle(alertType)
	table := alerts.CreateTable([]alerts.TableRow{
		{Label: "Device", Value: busiest.Name},
		{Label: "Utilization", Value: fmt.Sprintf("%.1f%%", busiest.UtilizationPercent)},
		{Label: "Read rate", Value: fmt.Sprintf("%.1f KB/s", busiest.ReadBytesPerSec/1024)},
		{Label: "Write rate", Value: fmt.Sprintf("%.1f KB/s", busiest.WriteBytesPerSec/1024)},
		{Label: "Avg read latency", Value: fmt.Sprintf("%.2f ms", busiest.AvgReadLatencyMs)},
		{Label: "Avg write latency", Value: fmt.Sprintf("%.2f ms", busiest.AvgWriteLatencyMs)},
	})

	title := fmt.Sprintf("Disk %s utilization %s", busiest.Name, style.StatusText)
	body := alerts.CreateAlertHTML(alertType, style, title, statusChanged,
		table, alerts.GetServerInfoForAlert(),
		alerts.CreateStatusLine(style.StatusColorClass, style.StatusText))

	if err := a.notifier.SendEmail(title, body); err != nil {
		logger.Debug("Storage alert notification not sent",
			logger.String("error", err.Error()))
	}
}

// GetNotificationManagers implements alerts.ConfigProvider.
func (a *AlertHandler) GetNotificationManagers() alerts.NotificationManager {
	return a.notifier
}

// GetConfig implements alerts.ConfigProvider.
func (a *AlertHandler) GetConfig() interface{} {
	return a.monitor.GetConfig()
}

// GetLastAlertTime implements alerts.ConfigProvider.
func (a *AlertHandler) GetLastAlertTime() time.Time {
	return a.lastAlertTime
}

// UpdateLastAlertTime implements alerts.ConfigProvider.
func (a *AlertHandler) UpdateLastAlertTime() {
	a.lastAlertTime = time.Now()
}

// IsThrottlingEnabled lets the shared handler read the throttling toggle.
func (a *AlertHandler) IsThrottlingEnabled() bool {
	return a.monitor.GetConfig().Notifications.Throttling.Enabled
}

// GetThrottlingCooldownPeriod lets the shared handler read the cooldown.
func (a *AlertHandler) GetThrottlingCooldownPeriod() int {
	return a.monitor.GetConfig().Notifications.Throttling.CooldownPeriod
}
