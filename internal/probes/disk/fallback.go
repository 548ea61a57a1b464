package disk

import (
	"StorWatch/internal/pkg/logger"

	gopsutilDisk "github.com/shirou/gopsutil/disk"
)

// FallbackProbe reads disk counters through gopsutil on platforms without a
// native counter source of their own. gopsutil reports byte counts directly,
// so the sector size is fixed at 1 and the sector fields carry bytes.
type FallbackProbe struct {
	caps Capabilities
}

// NewFallbackProbe creates the generic probe. Whether the platform delivers
// I/O timing at all is probed once here and frozen into the capability set.
func NewFallbackProbe() *FallbackProbe {
	caps := Capabilities{
		HasStats:              false,
		HasByteCounts:         true,
		HasIOTime:             true,
		HasDeviceMetadata:     false,
		DistinguishesPhysical: true,
	}
	if counters, err := gopsutilDisk.IOCounters(); err == nil && len(counters) > 0 {
		caps.HasStats = true
	}
	return &FallbackProbe{caps: caps}
}

// Capabilities returns the fixed capability set of this probe instance.
func (p *FallbackProbe) Capabilities() Capabilities {
	return p.caps
}

// Read returns one entry per accepted device, or an empty reading when the
// platform call fails.
func (p *FallbackProbe) Read() SystemCounters {
	counters, err := gopsutilDisk.IOCounters()
	if err != nil {
		logger.Warn("Disk counter source unavailable",
			logger.String("source", "gopsutil"),
			logger.String("error", err.Error()))
		return SystemCounters{}
	}

	var reading SystemCounters
	for name, stat := range counters {
		if !IncludeDevice(name) {
			continue
		}
		reading.Devices = append(reading.Devices, Counters{
			Name:             name,
			ReadsCompleted:   stat.ReadCount,
			WritesCompleted:  stat.WriteCount,
			SectorsRead:      stat.ReadBytes,
			SectorsWritten:   stat.WriteBytes,
			ReadTimeMs:       stat.ReadTime,
			WriteTimeMs:      stat.WriteTime,
			IOInProgress:     stat.IopsInProgress,
			IOTimeMs:         stat.IoTime,
			WeightedIOTimeMs: stat.WeightedIO,
			SectorSize:       1,
			Physical:         true,
		})
	}

	return reading
}
