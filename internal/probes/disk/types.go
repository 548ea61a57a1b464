package disk

// Counters holds cumulative per-device I/O counters as reported by the OS.
// All values only ever grow, except when the kernel resets a counter or the
// device disappears and comes back.
type Counters struct {
	Name             string `json:"name"`
	ReadsCompleted   uint64 `json:"reads_completed"`
	WritesCompleted  uint64 `json:"writes_completed"`
	SectorsRead      uint64 `json:"sectors_read"`
	SectorsWritten   uint64 `json:"sectors_written"`
	ReadTimeMs       uint64 `json:"read_time_ms"`
	WriteTimeMs      uint64 `json:"write_time_ms"`
	IOInProgress     uint64 `json:"io_in_progress"`
	IOTimeMs         uint64 `json:"io_time_ms"`
	WeightedIOTimeMs uint64 `json:"weighted_io_time_ms"`
	SectorSize       uint64 `json:"sector_size"`
	Physical         bool   `json:"physical"`
}

// SystemCounters is one complete reading of all visible devices.
// It is owned by the caller; probes never retain it.
type SystemCounters struct {
	Devices []Counters `json:"devices"`
}

// Capabilities describes which counter families a probe instance can supply.
// It is fixed at probe construction and never changes between reads.
type Capabilities struct {
	HasStats              bool `json:"has_stats"`
	HasByteCounts         bool `json:"has_byte_counts"`
	HasIOTime             bool `json:"has_io_time"`
	HasDeviceMetadata     bool `json:"has_device_metadata"`
	DistinguishesPhysical bool `json:"distinguishes_physical"`
}

// Probe reads raw disk counters from the platform. Implementations are
// stateless: every Read returns a fresh snapshot and a failed read degrades
// to an empty device list rather than an error.
type Probe interface {
	Read() SystemCounters
	Capabilities() Capabilities
}
