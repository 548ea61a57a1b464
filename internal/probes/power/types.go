package power

// BatteryState enumerates the charge direction of the battery.
type BatteryState int

const (
	StateUnknown BatteryState = iota
	StateCharging
	StateDischarging
	StateFull
	StateNotPresent
)

// String returns the lower-case name used in snapshots and API payloads.
func (s BatteryState) String() string {
	switch s {
	case StateCharging:
		return "charging"
	case StateDischarging:
		return "discharging"
	case StateFull:
		return "full"
	case StateNotPresent:
		return "not_present"
	default:
		return "unknown"
	}
}

// Unavailable marks a numeric field whose value the platform cannot supply.
const Unavailable = -1

// Counters is one battery/power reading. Unlike disk counters these are not
// cumulative; unit conversion and derived estimates happen at the probe edge
// because only the platform layer knows the native units.
//
// Sign convention for PowerDrawW: positive while discharging, negative while
// charging.
type Counters struct {
	State          BatteryState `json:"-"`
	StateName      string       `json:"state"`
	OnAC           bool         `json:"on_ac"`
	ChargePercent  float64      `json:"charge_percent"`
	ChargeNowWh    float64      `json:"charge_now_wh"`
	ChargeFullWh   float64      `json:"charge_full_wh"`
	ChargeDesignWh float64      `json:"charge_design_wh"`
	PowerDrawW     float64      `json:"power_draw_w"`
	VoltageV       float64      `json:"voltage_v"`
	Technology     string       `json:"technology,omitempty"`
	Model          string       `json:"model,omitempty"`
	Manufacturer   string       `json:"manufacturer,omitempty"`
	CycleCount     int64        `json:"cycle_count"`
	HealthPercent  float64      `json:"health_percent"`
	TimeToEmptySec float64      `json:"time_to_empty_sec"`
	TimeToFullSec  float64      `json:"time_to_full_sec"`
}

// Capabilities describes what the platform's battery interface can report.
// Fixed at probe construction from a one-time enumeration.
type Capabilities struct {
	BatteryPresent bool `json:"battery_present"`
	HasChargeLevel bool `json:"has_charge_level"`
	HasPowerDraw   bool `json:"has_power_draw"`
	HasHealthInfo  bool `json:"has_health_info"`
}

// Probe reads current battery/AC state. Implementations are stateless and
// never fail: a machine without a battery reads as StateNotPresent on AC.
type Probe interface {
	Read() Counters
	Capabilities() Capabilities
}

// noBatteryReading is the required normalization for machines without a
// battery: wall power is assumed.
func noBatteryReading() Counters {
	return Counters{
		State:          StateNotPresent,
		StateName:      StateNotPresent.String(),
		OnAC:           true,
		ChargePercent:  Unavailable,
		HealthPercent:  Unavailable,
		TimeToEmptySec: Unavailable,
		TimeToFullSec:  Unavailable,
	}
}
