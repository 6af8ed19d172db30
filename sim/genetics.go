package sim

import "terrarium/components"

// freshGenetics draws a founder trait vector, each trait uniform in
// [0.8, 1.2] around the neutral value.
func (w *World) freshGenetics() components.Genetics {
	var g components.Genetics
	var traits [components.TraitCount]float64
	for i := range traits {
		traits[i] = 0.8 + w.rng.Float64()*0.4
	}
	g.SetTraits(traits)
	return g
}

// inheritGenetics builds a child trait vector: the parental average with a
// per-trait mutation chance that shifts the value by a uniform delta, then
// clamps into the valid trait range.
func (w *World) inheritGenetics(a, b *components.Genetics) components.Genetics {
	ta := a.Traits()
	tb := b.Traits()

	var child [components.TraitCount]float64
	for i := range child {
		v := (ta[i] + tb[i]) / 2
		if w.rng.Float64() < w.cfg.Genetics.MutationChance {
			scale := w.cfg.Genetics.MutationScale
			v += (w.rng.Float64()*2 - 1) * scale
		}
		child[i] = v
	}

	var g components.Genetics
	g.SetTraits(child)
	return g
}
