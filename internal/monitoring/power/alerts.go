package power

import (
	"StorWatch/internal/alerts"
	"StorWatch/internal/pkg/logger"
	"StorWatch/internal/probes/power"
	"fmt"
	"time"
)

// AlertHandler raises email alerts when the battery is discharging below the
// configured charge thresholds.
type AlertHandler struct {
	monitor       *Monitor
	handler       *alerts.Handler
	notifier      alerts.NotificationManager
	lastStatus    string
	lastAlertTime time.Time
}

// NewAlertHandler creates the alert handler for a power monitor.
func NewAlertHandler(monitor *Monitor) *AlertHandler {
	a := &AlertHandler{
		monitor:    monitor,
		notifier:   alerts.NewEmailNotifier(monitor.GetConfig()),
		lastStatus: "normal",
	}
	a.handler = alerts.NewHandler(a, nil)
	return a
}

// Evaluate inspects a published reading and sends a notification when the
// battery status crosses a threshold.
func (a *AlertHandler) Evaluate(reading power.Counters) {
	status := determineBatteryStatus(reading, a.monitor.GetConfig())
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
	rows := []alerts.TableRow{
		{Label: "State", Value: reading.StateName},
		{Label: "Charge", Value: fmt.Sprintf("%.0f%%", reading.ChargePercent)},
		{Label: "Power draw", Value: fmt.Sprintf("%.1f W", reading.PowerDrawW)},
	}
	if reading.TimeToEmptySec > 0 {
		rows = append(rows, alerts.TableRow{
			Label: "Time to empty",
			Value: (time.Duration(reading.TimeToEmptySec) * time.Second).String(),
		})
	}
	table := alerts.CreateTable(rows)

	title := fmt.Sprintf("Battery charge %s (%.0f%%)", style.StatusText, reading.ChargePercent)
	body := alerts.CreateAlertHTML(alertType, style, title, statusChanged,
		table, alerts.GetServerInfoForAlert(),
		alerts.CreateStatusLine(style.StatusColorClass, style.StatusText))

	if err := a.notifier.SendEmail(title, body); err != nil {
		logger.Debug("Power alert notification not sent",
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
