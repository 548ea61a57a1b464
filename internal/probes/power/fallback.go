package power

// FallbackProbe is used on platforms without a battery interface. Every read
// reports the no-battery normalization: not present, on wall power.
type FallbackProbe struct{}

// NewFallbackProbe creates the generic no-battery probe.
func NewFallbackProbe() *FallbackProbe {
	return &FallbackProbe{}
}

// Capabilities reports that nothing battery-related is available.
func (p *FallbackProbe) Capabilities() Capabilities {
	return Capabilities{}
}

// Read always returns the no-battery reading.
func (p *FallbackProbe) Read() Counters {
	return noBatteryReading()
}
