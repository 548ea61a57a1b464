//go:build !linux && !windows

package disk

// newPlatformProbe falls back to the gopsutil-backed generic probe.
func newPlatformProbe() Probe {
	return NewFallbackProbe()
}
