//go:build windows

package power

import (
	"StorWatch/internal/pkg/logger"

	"github.com/StackExchange/wmi"
)

// wmiBatteryClass is the WQL class name. CreateQuery would otherwise derive
// it from the Go type name, which WMI does not know.
const wmiBatteryClass = "Win32_Battery"

// win32Battery is the subset of the WMI Win32_Battery class the probe reads.
type win32Battery struct {
	BatteryStatus            uint16
	EstimatedChargeRemaining uint16
	EstimatedRunTime         uint32
	FullChargeCapacity       uint32 // mWh
	DesignCapacity           uint32 // mWh
	DesignVoltage            uint64 // mV
	Chemistry                uint16
	Name                     string
	DeviceID                 string
}

// WmiProbe reads battery state through the WMI Win32_Battery class.
type WmiProbe struct {
	caps Capabilities
}

// NewWmiProbe creates the probe and fixes its capability set from a one-time
// battery enumeration.
func NewWmiProbe() *WmiProbe {
	p := &WmiProbe{}

	var batteries []win32Battery
	query := wmi.CreateQuery(&batteries, "", wmiBatteryClass)
	if err := wmi.Query(query, &batteries); err != nil {
		logger.Warn("WMI battery enumeration failed",
			logger.String("error", err.Error()))
		return p
	}
	if len(batteries) == 0 {
		return p
	}

	p.caps.BatteryPresent = true
	p.caps.HasChargeLevel = true
	p.caps.HasHealthInfo = batteries[0].DesignCapacity > 0
	return p
}

// Capabilities returns the fixed capability set of this probe instance.
func (p *WmiProbe) Capabilities() Capabilities {
	return p.caps
}

// Read queries Win32_Battery. Machines without a battery, and failed
// queries, read as StateNotPresent on wall power.
func (p *WmiProbe) Read() Counters {
	var batteries []win32Battery
	query := wmi.CreateQuery(&batteries, "", wmiBatteryClass)
	if err := wmi.Query(query, &batteries); err != nil {
		logger.Warn("WMI battery query failed",
			logger.String("error", err.Error()))
		return noBatteryReading()
	}
	if len(batteries) == 0 {
		return noBatteryReading()
	}

	b := batteries[0]
	c := Counters{
		ChargePercent:  float64(b.EstimatedChargeRemaining),
		ChargeNowWh:    float64(b.FullChargeCapacity) / 1000 * float64(b.EstimatedChargeRemaining) / 100,
		ChargeFullWh:   float64(b.FullChargeCapacity) / 1000,
		ChargeDesignWh: float64(b.DesignCapacity) / 1000,
		VoltageV:       float64(b.DesignVoltage) / 1000,
		Model:          b.Name,
		CycleCount:     Unavailable,
		HealthPercent:  Unavailable,
		TimeToEmptySec: Unavailable,
		TimeToFullSec:  Unavailable,
	}

	c.State = mapBatteryStatus(b.BatteryStatus)
	c.StateName = c.State.String()
	c.OnAC = c.State == StateCharging || c.State == StateFull

	if c.ChargeDesignWh > 0 {
		c.HealthPercent = c.ChargeFullWh / c.ChargeDesignWh * 100
	}

	// Win32_Battery has no instantaneous draw; the run-time estimate the
	// firmware reports is the closest equivalent.
	if c.State == StateDischarging && b.EstimatedRunTime > 0 && b.EstimatedRunTime < 0xFFFF {
		c.TimeToEmptySec = float64(b.EstimatedRunTime) * 60
	}

	return c
}

// mapBatteryStatus maps a Win32_Battery BatteryStatus code to the state
// enum. Code 2 means "on AC, not being discharged" and 11 "partially
// charged"; both normalize to Full.
func mapBatteryStatus(status uint16) BatteryState {
	switch status {
	case 1, 4, 5:
		return StateDischarging
	case 6, 7, 8, 9:
		return StateCharging
	case 2, 3, 11:
		return StateFull
	default:
		return StateUnknown
	}
}

// newPlatformProbe selects the WMI battery probe on Windows.
func newPlatformProbe() Probe {
	return NewWmiProbe()
}
