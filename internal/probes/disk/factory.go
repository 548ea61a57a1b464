package disk

// NewProbe returns the disk probe for the current platform. The selection
// happens exactly once; callers hold the returned probe for their lifetime
// and never branch on the platform again.
func NewProbe() Probe {
	return newPlatformProbe()
}
