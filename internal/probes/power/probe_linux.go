//go:build linux

package power

// newPlatformProbe selects the sysfs power-supply reader on Linux.
func newPlatformProbe() Probe {
	return NewSysfsProbe("")
}
