package storage

import (
	"StorWatch/internal/probes/disk"
	"time"
)

// DiskSnapshot is the derived, read-only view of one device: rates computed
// against the previous sample plus the cumulative totals carried through
// unchanged. A device seen for the first time has all rate fields at zero.
type DiskSnapshot struct {
	Name     string `json:"name"`
	Physical bool   `json:"physical"`

	ReadBytesPerSec  float64 `json:"read_bytes_per_sec"`
	WriteBytesPerSec float64 `json:"write_bytes_per_sec"`
	ReadOpsPerSec    float64 `json:"read_ops_per_sec"`
	WriteOpsPerSec   float64 `json:"write_ops_per_sec"`

	// Busy time over the sampling interval, clamped to [0,100].
	UtilizationPercent float64 `json:"utilization_percent"`

	// Average time per completed operation over the interval, in ms.
	AvgReadLatencyMs  float64 `json:"avg_read_latency_ms"`
	AvgWriteLatencyMs float64 `json:"avg_write_latency_ms"`

	TotalReads        uint64 `json:"total_reads"`
	TotalWrites       uint64 `json:"total_writes"`
	TotalReadBytes    uint64 `json:"total_read_bytes"`
	TotalWriteBytes   uint64 `json:"total_write_bytes"`
	IOInProgress      uint64 `json:"io_in_progress"`
	TotalIOTimeMs     uint64 `json:"total_io_time_ms"`
	WeightedIOTimeMs  uint64 `json:"weighted_io_time_ms"`
}

// Snapshot aggregates the per-device snapshots for one point in time with
// system-wide summed rates and the probe's capability flags.
type Snapshot struct {
	Timestamp time.Time      `json:"timestamp"`
	Disks     []DiskSnapshot `json:"disks"`

	TotalReadBytesPerSec  float64 `json:"total_read_bytes_per_sec"`
	TotalWriteBytesPerSec float64 `json:"total_write_bytes_per_sec"`
	TotalReadOpsPerSec    float64 `json:"total_read_ops_per_sec"`
	TotalWriteOpsPerSec   float64 `json:"total_write_ops_per_sec"`

	Capabilities disk.Capabilities `json:"capabilities"`
}

// clone returns a deep copy so callers never share the Disks slice with the
// model's internal state.
func (s Snapshot) clone() Snapshot {
	out := s
	out.Disks = make([]DiskSnapshot, len(s.Disks))
	copy(out.Disks, s.Disks)
	return out
}
