//go:build linux

package disk

// newPlatformProbe selects the /proc/diskstats reader on Linux.
func newPlatformProbe() Probe {
	return NewProcProbe("")
}
