package disk

import (
	"StorWatch/internal/pkg/logger"
	"bufio"
	"os"
	"strconv"
	"strings"
)

// /proc/diskstats reports sector counts in fixed 512-byte units regardless
// of the device's hardware sector size.
const procSectorSize = 512

// ProcProbe reads cumulative disk counters from a Linux-style line-oriented
// counter table (normally /proc/diskstats).
type ProcProbe struct {
	path string
	caps Capabilities
}

// NewProcProbe creates a probe over the given diskstats path. Capabilities
// are decided here, once; a missing file at read time only produces empty
// readings, it never narrows the capability set afterwards.
func NewProcProbe(path string) *ProcProbe {
	if path == "" {
		path = "/proc/diskstats"
	}
	return &ProcProbe{
		path: path,
		caps: Capabilities{
			HasStats:              true,
			HasByteCounts:         true,
			HasIOTime:             true,
			HasDeviceMetadata:     false,
			DistinguishesPhysical: true,
		},
	}
}

// Capabilities returns the fixed capability set of this probe instance.
func (p *ProcProbe) Capabilities() Capabilities {
	return p.caps
}

// Read parses the counter table and returns one entry per accepted device.
// An unreadable table is non-fatal: it is logged and an empty reading is
// returned for this call only.
func (p *ProcProbe) Read() SystemCounters {
	file, err := os.Open(p.path)
	if err != nil {
		logger.Warn("Disk counter source unavailable",
			logger.String("path", p.path),
			logger.String("error", err.Error()))
		return SystemCounters{}
	}
	defer file.Close()

	var reading SystemCounters
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		counters, ok := parseDiskstatsLine(scanner.Text())
		if !ok {
			continue
		}
		if !IncludeDevice(counters.Name) {
			continue
		}
		reading.Devices = append(reading.Devices, counters)
	}

	if err := scanner.Err(); err != nil {
		logger.Warn("Error while scanning disk counter source",
			logger.String("path", p.path),
			logger.String("error", err.Error()))
	}

	return reading
}

// parseDiskstatsLine parses one /proc/diskstats line.
// Field layout: major minor name reads_completed reads_merged sectors_read
// read_time_ms writes_completed writes_merged sectors_written write_time_ms
// io_in_progress io_time_ms weighted_io_time_ms [...]
// Malformed lines are skipped individually, never aborting the whole parse.
func parseDiskstatsLine(line string) (Counters, bool) {
	fields := strings.Fields(line)
	if len(fields) < 14 {
		return Counters{}, false
	}

	name := fields[2]
	if name == "" {
		return Counters{}, false
	}

	values := make([]uint64, 11)
	for i := range values {
		v, err := strconv.ParseUint(fields[i+3], 10, 64)
		if err != nil {
			return Counters{}, false
		}
		values[i] = v
	}

	return Counters{
		Name:             name,
		ReadsCompleted:   values[0],
		SectorsRead:      values[2],
		ReadTimeMs:       values[3],
		WritesCompleted:  values[4],
		SectorsWritten:   values[6],
		WriteTimeMs:      values[7],
		IOInProgress:     values[8],
		IOTimeMs:         values[9],
		WeightedIOTimeMs: values[10],
		SectorSize:       procSectorSize,
		Physical:         true,
	}, true
}
