package sim

// gasMax is the ceiling for each gas pool and for the rebalanced sum.
const gasMax = 100.0

// Atmosphere is the shared gas and light state coupling all entities.
// Gases are percentages; Sunlight is an intensity in [0,10].
type Atmosphere struct {
	O2       float64
	CO2      float64
	Sunlight float64
}

// ConsumeO2 removes up to amount of O2 and reports whether the full amount
// was available. Partial consumption still happens on scarcity.
func (a *Atmosphere) ConsumeO2(amount float64) bool {
	if a.O2 >= amount {
		a.O2 -= amount
		return true
	}
	a.O2 = 0
	return false
}

// ConsumeCO2 removes up to amount of CO2 and reports whether the full
// amount was available.
func (a *Atmosphere) ConsumeCO2(amount float64) bool {
	if a.CO2 >= amount {
		a.CO2 -= amount
		return true
	}
	a.CO2 = 0
	return false
}

// ReleaseO2 adds O2, clamped to the pool ceiling.
func (a *Atmosphere) ReleaseO2(amount float64) {
	a.O2 = clamp(a.O2+amount, 0, gasMax)
}

// ReleaseCO2 adds CO2, clamped to the pool ceiling.
func (a *Atmosphere) ReleaseCO2(amount float64) {
	a.CO2 = clamp(a.CO2+amount, 0, gasMax)
}

// Rebalance enforces o2+co2 <= 100 by shrinking both proportionally.
// Runs at the end of every tick.
func (a *Atmosphere) Rebalance() {
	a.O2 = clamp(a.O2, 0, gasMax)
	a.CO2 = clamp(a.CO2, 0, gasMax)
	sum := a.O2 + a.CO2
	if sum > gasMax {
		scale := gasMax / sum
		a.O2 *= scale
		a.CO2 *= scale
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
