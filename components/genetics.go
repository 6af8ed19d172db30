package components

// Trait bounds. Every heritable trait is clamped to this range at creation
// and after mutation.
const (
	TraitMin = 0.3
	TraitMax = 2.0
)

// TraitCount is the number of heritable traits.
const TraitCount = 8

// Genetics is the heritable trait vector. Each trait is a multiplier around
// 1.0; values are exclusively owned by their entity and copied on inheritance.
type Genetics struct {
	Speed      float64 // movement and hunt odds
	Efficiency float64 // scales metabolic upkeep down
	Size       float64 // energy capacity and intimidation
	Fertility  float64 // reproduction odds
	Immunity   float64 // resists disease transmission
	Lifespan   float64 // scales sampled max age
	Perception float64 // scales search ranges
	Camouflage float64 // evades hunters
}

// Traits returns the trait values in declaration order.
func (g *Genetics) Traits() [TraitCount]float64 {
	return [TraitCount]float64{
		g.Speed, g.Efficiency, g.Size, g.Fertility,
		g.Immunity, g.Lifespan, g.Perception, g.Camouflage,
	}
}

// SetTraits assigns trait values in declaration order, clamping each.
func (g *Genetics) SetTraits(vals [TraitCount]float64) {
	g.Speed = ClampTrait(vals[0])
	g.Efficiency = ClampTrait(vals[1])
	g.Size = ClampTrait(vals[2])
	g.Fertility = ClampTrait(vals[3])
	g.Immunity = ClampTrait(vals[4])
	g.Lifespan = ClampTrait(vals[5])
	g.Perception = ClampTrait(vals[6])
	g.Camouflage = ClampTrait(vals[7])
}

// Fitness is the mean of all traits, used for population telemetry.
func (g *Genetics) Fitness() float64 {
	var sum float64
	for _, v := range g.Traits() {
		sum += v
	}
	return sum / TraitCount
}

// ClampTrait bounds a trait value to [TraitMin, TraitMax].
func ClampTrait(v float64) float64 {
	if v < TraitMin {
		return TraitMin
	}
	if v > TraitMax {
		return TraitMax
	}
	return v
}
