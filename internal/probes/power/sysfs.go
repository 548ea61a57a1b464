package power

import (
	"StorWatch/internal/pkg/logger"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Below this draw (in watts) time estimates are meaningless: dividing the
// remaining capacity by a near-zero rate produces absurd values.
const minMeaningfulDrawW = 0.01

const microFactor = 1e6

// SysfsProbe reads battery state from a Linux power-supply class tree
// (normally /sys/class/power_supply).
type SysfsProbe struct {
	root string
	caps Capabilities
}

// NewSysfsProbe creates the probe and runs the one-time battery enumeration
// that fixes its capability set.
func NewSysfsProbe(root string) *SysfsProbe {
	if root == "" {
		root = "/sys/class/power_supply"
	}
	p := &SysfsProbe{root: root}

	battery := p.findBattery()
	if battery == "" {
		return p
	}

	p.caps.BatteryPresent = true
	p.caps.HasChargeLevel = fileExists(filepath.Join(battery, "capacity")) ||
		fileExists(filepath.Join(battery, "energy_now")) ||
		fileExists(filepath.Join(battery, "charge_now"))
	p.caps.HasPowerDraw = fileExists(filepath.Join(battery, "power_now")) ||
		fileExists(filepath.Join(battery, "current_now"))
	p.caps.HasHealthInfo = fileExists(filepath.Join(battery, "energy_full_design")) ||
		fileExists(filepath.Join(battery, "charge_full_design"))
	return p
}

// Capabilities returns the fixed capability set of this probe instance.
func (p *SysfsProbe) Capabilities() Capabilities {
	return p.caps
}

// Read returns the current battery reading. Without a battery the reading is
// normalized to StateNotPresent on wall power.
func (p *SysfsProbe) Read() Counters {
	battery := p.findBattery()
	if battery == "" {
		return noBatteryReading()
	}
	return p.readBattery(battery)
}

// findBattery returns the path of the first power-supply entry of type
// Battery, or "" when none exists or the tree is unreadable.
func (p *SysfsProbe) findBattery() string {
	entries, err := os.ReadDir(p.root)
	if err != nil {
		logger.Warn("Power supply tree unavailable",
			logger.String("path", p.root),
			logger.String("error", err.Error()))
		return ""
	}

	for _, entry := range entries {
		supplyType, ok := readString(filepath.Join(p.root, entry.Name(), "type"))
		if !ok {
			continue
		}
		if supplyType == "Battery" {
			return filepath.Join(p.root, entry.Name())
		}
	}
	return ""
}

func (p *SysfsProbe) readBattery(path string) Counters {
	c := Counters{
		ChargePercent:  Unavailable,
		HealthPercent:  Unavailable,
		TimeToEmptySec: Unavailable,
		TimeToFullSec:  Unavailable,
		CycleCount:     Unavailable,
	}

	status, _ := readString(filepath.Join(path, "status"))
	c.State = mapStatus(status)
	c.StateName = c.State.String()
	c.OnAC = c.State == StateCharging || c.State == StateFull

	voltageUV, hasVoltage := readUint(filepath.Join(path, "voltage_now"))
	if hasVoltage {
		c.VoltageV = float64(voltageUV) / microFactor
	}

	// Energy readings come in µWh; boards that only expose charge (µAh)
	// need the charge x voltage derivation with the corresponding 1e12
	// scale correction.
	energyNow, hasEnergy := readUint(filepath.Join(path, "energy_now"))
	energyFull, _ := readUint(filepath.Join(path, "energy_full"))
	energyDesign, _ := readUint(filepath.Join(path, "energy_full_design"))
	if hasEnergy {
		c.ChargeNowWh = float64(energyNow) / microFactor
		c.ChargeFullWh = float64(energyFull) / microFactor
		c.ChargeDesignWh = float64(energyDesign) / microFactor
	} else if hasVoltage {
		chargeNow, _ := readUint(filepath.Join(path, "charge_now"))
		chargeFull, _ := readUint(filepath.Join(path, "charge_full"))
		chargeDesign, _ := readUint(filepath.Join(path, "charge_full_design"))
		c.ChargeNowWh = float64(chargeNow) * float64(voltageUV) / 1e12
		c.ChargeFullWh = float64(chargeFull) * float64(voltageUV) / 1e12
		c.ChargeDesignWh = float64(chargeDesign) * float64(voltageUV) / 1e12
	}

	if percent, ok := readUint(filepath.Join(path, "capacity")); ok {
		c.ChargePercent = float64(percent)
	} else if c.ChargeFullWh > 0 {
		c.ChargePercent = c.ChargeNowWh / c.ChargeFullWh * 100
	}

	// The sign flip happens here, at the unit conversion, so consumers
	// never have to know which direction the kernel reports.
	powerUW, hasPower := readUint(filepath.Join(path, "power_now"))
	if hasPower {
		c.PowerDrawW = float64(powerUW) / microFactor
	} else if currentUA, ok := readUint(filepath.Join(path, "current_now")); ok && hasVoltage {
		c.PowerDrawW = float64(currentUA) * float64(voltageUV) / 1e12
	}
	if c.State == StateCharging {
		c.PowerDrawW = -c.PowerDrawW
	}

	if c.ChargeDesignWh > 0 {
		c.HealthPercent = c.ChargeFullWh / c.ChargeDesignWh * 100
	}

	if cycles, ok := readUint(filepath.Join(path, "cycle_count")); ok {
		c.CycleCount = int64(cycles)
	}
	c.Technology, _ = readString(filepath.Join(path, "technology"))
	c.Model, _ = readString(filepath.Join(path, "model_name"))
	c.Manufacturer, _ = readString(filepath.Join(path, "manufacturer"))

	deriveTimeEstimates(&c)
	return c
}

// mapStatus maps a kernel status string to the battery state enum. A battery
// that is plugged in but not actively charging counts as full.
func mapStatus(status string) BatteryState {
	switch status {
	case "Charging":
		return StateCharging
	case "Discharging":
		return StateDischarging
	case "Full", "Not charging":
		return StateFull
	default:
		return StateUnknown
	}
}

// deriveTimeEstimates fills in time-to-empty/full from the draw and the
// remaining or headroom capacity. Estimates are produced only when the
// relevant rate is meaningfully non-zero.
func deriveTimeEstimates(c *Counters) {
	if c.PowerDrawW > minMeaningfulDrawW && c.State == StateDischarging {
		c.TimeToEmptySec = c.ChargeNowWh / c.PowerDrawW * 3600
	}
	if c.PowerDrawW < -minMeaningfulDrawW && c.ChargeNowWh < c.ChargeFullWh {
		c.TimeToFullSec = (c.ChargeFullWh - c.ChargeNowWh) / -c.PowerDrawW * 3600
	}
}

func readUint(path string) (uint64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func readString(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
