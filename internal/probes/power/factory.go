package power

// NewProbe returns the power probe for the current platform, selected once
// at composition time.
func NewProbe() Probe {
	return newPlatformProbe()
}
