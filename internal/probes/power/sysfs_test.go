package power

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeSupply creates one power-supply entry under root with the given
// attribute files.
func writeSupply(t *testing.T, root, name string, attrs map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for attr, value := range attrs {
		if err := os.WriteFile(filepath.Join(dir, attr), []byte(value+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSysfsProbeNoBattery(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "AC", map[string]string{"type": "Mains", "online": "1"})

	probe := NewSysfsProbe(root)

	caps := probe.Capabilities()
	if caps.BatteryPresent {
		t.Error("BatteryPresent = true, want false")
	}

	c := probe.Read()
	if c.State != StateNotPresent {
		t.Errorf("State = %v, want StateNotPresent", c.State)
	}
	if !c.OnAC {
		t.Error("OnAC = false, want true for a machine without a battery")
	}
	if c.ChargePercent != Unavailable {
		t.Errorf("ChargePercent = %v, want %v", c.ChargePercent, Unavailable)
	}
}

func TestSysfsProbeMissingRoot(t *testing.T) {
	probe := NewSysfsProbe(filepath.Join(t.TempDir(), "nope"))

	c := probe.Read()
	if c.State != StateNotPresent || !c.OnAC {
		t.Errorf("got state %v on_ac %v, want not_present on AC", c.State, c.OnAC)
	}
}

func TestSysfsProbeEnergyUnits(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "BAT0", map[string]string{
		"type":               "Battery",
		"status":             "Discharging",
		"capacity":           "73",
		"energy_now":         "36500000", // 36.5 Wh in uWh
		"energy_full":        "50000000",
		"energy_full_design": "57000000",
		"voltage_now":        "12300000", // 12.3 V in uV
		"power_now":          "10000000", // 10 W in uW
		"cycle_count":        "214",
		"technology":         "Li-ion",
	})

	probe := NewSysfsProbe(root)

	caps := probe.Capabilities()
	if !caps.BatteryPresent || !caps.HasChargeLevel || !caps.HasPowerDraw || !caps.HasHealthInfo {
		t.Fatalf("capabilities = %+v, want all true", caps)
	}

	c := probe.Read()
	if c.State != StateDischarging {
		t.Errorf("State = %v, want discharging", c.State)
	}
	if c.OnAC {
		t.Error("OnAC = true while discharging")
	}
	if c.ChargePercent != 73 {
		t.Errorf("ChargePercent = %v, want 73", c.ChargePercent)
	}
	if !almostEqual(c.ChargeNowWh, 36.5) {
		t.Errorf("ChargeNowWh = %v, want 36.5", c.ChargeNowWh)
	}
	if !almostEqual(c.ChargeFullWh, 50) {
		t.Errorf("ChargeFullWh = %v, want 50", c.ChargeFullWh)
	}
	if !almostEqual(c.PowerDrawW, 10) {
		t.Errorf("PowerDrawW = %v, want 10 (positive while discharging)", c.PowerDrawW)
	}
	if !almostEqual(c.VoltageV, 12.3) {
		t.Errorf("VoltageV = %v, want 12.3", c.VoltageV)
	}
	if !almostEqual(c.HealthPercent, 50.0/57.0*100) {
		t.Errorf("HealthPercent = %v, want %v", c.HealthPercent, 50.0/57.0*100)
	}
	if c.CycleCount != 214 {
		t.Errorf("CycleCount = %v, want 214", c.CycleCount)
	}

	// 36.5 Wh at 10 W is 3.65 hours
	wantTTE := 36.5 / 10 * 3600
	if !almostEqual(c.TimeToEmptySec, wantTTE) {
		t.Errorf("TimeToEmptySec = %v, want %v", c.TimeToEmptySec, wantTTE)
	}
	if c.TimeToFullSec != Unavailable {
		t.Errorf("TimeToFullSec = %v, want unavailable while discharging", c.TimeToFullSec)
	}
}

func TestSysfsProbeChargeUnits(t *testing.T) {
	root := t.TempDir()
	// Board exposing charge (uAh) instead of energy (uWh)
	writeSupply(t, root, "BAT1", map[string]string{
		"type":               "Battery",
		"status":             "Charging",
		"charge_now":         "3000000", // 3 Ah
		"charge_full":        "4000000", // 4 Ah
		"charge_full_design": "4500000",
		"voltage_now":        "11000000", // 11 V
		"current_now":        "2000000",  // 2 A
	})

	probe := NewSysfsProbe(root)
	c := probe.Read()

	if c.State != StateCharging {
		t.Errorf("State = %v, want charging", c.State)
	}
	if !c.OnAC {
		t.Error("OnAC = false while charging")
	}

	// 3 Ah x 11 V = 33 Wh
	if !almostEqual(c.ChargeNowWh, 33) {
		t.Errorf("ChargeNowWh = %v, want 33", c.ChargeNowWh)
	}
	if !almostEqual(c.ChargeFullWh, 44) {
		t.Errorf("ChargeFullWh = %v, want 44", c.ChargeFullWh)
	}

	// 2 A x 11 V = 22 W, negated while charging
	if !almostEqual(c.PowerDrawW, -22) {
		t.Errorf("PowerDrawW = %v, want -22 (negative while charging)", c.PowerDrawW)
	}

	// No capacity file; percent falls back to now/full
	if !almostEqual(c.ChargePercent, 75) {
		t.Errorf("ChargePercent = %v, want 75", c.ChargePercent)
	}

	// (44 - 33) Wh at 22 W is half an hour
	if !almostEqual(c.TimeToFullSec, 1800) {
		t.Errorf("TimeToFullSec = %v, want 1800", c.TimeToFullSec)
	}
	if c.TimeToEmptySec != Unavailable {
		t.Errorf("TimeToEmptySec = %v, want unavailable while charging", c.TimeToEmptySec)
	}
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		status string
		want   BatteryState
	}{
		{"Charging", StateCharging},
		{"Discharging", StateDischarging},
		{"Full", StateFull},
		{"Not charging", StateFull},
		{"Unknown", StateUnknown},
		{"", StateUnknown},
	}

	for _, tt := range tests {
		if got := mapStatus(tt.status); got != tt.want {
			t.Errorf("mapStatus(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestDeriveTimeEstimatesNearZeroDraw(t *testing.T) {
	c := Counters{
		State:          StateDischarging,
		ChargeNowWh:    30,
		ChargeFullWh:   50,
		PowerDrawW:     0.005,
		TimeToEmptySec: Unavailable,
		TimeToFullSec:  Unavailable,
	}

	deriveTimeEstimates(&c)
	if c.TimeToEmptySec != Unavailable {
		t.Errorf("TimeToEmptySec = %v, want unavailable for near-zero draw", c.TimeToEmptySec)
	}
	if c.TimeToFullSec != Unavailable {
		t.Errorf("TimeToFullSec = %v, want unavailable for near-zero draw", c.TimeToFullSec)
	}
}

func TestSysfsProbeFullOnAC(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "BAT0", map[string]string{
		"type":        "Battery",
		"status":      "Full",
		"capacity":    "100",
		"energy_now":  "50000000",
		"energy_full": "50000000",
		"voltage_now": "12000000",
		"power_now":   "0",
	})

	probe := NewSysfsProbe(root)
	c := probe.Read()

	if c.State != StateFull {
		t.Errorf("State = %v, want full", c.State)
	}
	if !c.OnAC {
		t.Error("OnAC = false, want true when full")
	}
	if c.TimeToEmptySec != Unavailable || c.TimeToFullSec != Unavailable {
		t.Errorf("time estimates = %v/%v, want unavailable at zero draw",
			c.TimeToEmptySec, c.TimeToFullSec)
	}
}
