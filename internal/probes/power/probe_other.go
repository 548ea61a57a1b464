//go:build !linux && !windows

package power

// newPlatformProbe falls back to the no-battery probe.
func newPlatformProbe() Probe {
	return NewFallbackProbe()
}
