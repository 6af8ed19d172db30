// Package components defines the per-entity data stored in the ECS arena.
package components

// Species is the closed set of entity kinds.
type Species uint8

const (
	Plant Species = iota
	Herbivore
	Omnivore
	Carnivore
	ApexPredator
	Decomposer
	Parasite
	DeadMatter

	// SpeciesCount is the number of species, including DeadMatter.
	SpeciesCount
)

// String returns the display name for a species.
func (s Species) String() string {
	names := SpeciesNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// SpeciesNames returns the display names for all species.
// The order matches the Species constants.
func SpeciesNames() []string {
	return []string{
		"Plant", "Herbivore", "Omnivore", "Carnivore",
		"ApexPredator", "Decomposer", "Parasite", "DeadMatter",
	}
}

// SpeciesByName maps a display name back to its Species value.
func SpeciesByName(name string) (Species, bool) {
	for i, n := range SpeciesNames() {
		if n == name {
			return Species(i), true
		}
	}
	return 0, false
}

// IsAnimal reports whether the species breathes O2 and can move.
func (s Species) IsAnimal() bool {
	switch s {
	case Herbivore, Omnivore, Carnivore, ApexPredator, Decomposer, Parasite:
		return true
	}
	return false
}

// IsLiving reports whether the species is a living entity (not decaying matter).
func (s Species) IsLiving() bool {
	return s != DeadMatter && s < SpeciesCount
}

// LeavesResidue reports whether death converts the entity to DeadMatter.
// Decomposers and parasites vanish without residue.
func (s Species) LeavesResidue() bool {
	switch s {
	case Decomposer, Parasite, DeadMatter:
		return false
	}
	return true
}

// PreyOf returns the species a hunter preys on, in priority order.
func PreyOf(s Species) []Species {
	switch s {
	case Herbivore:
		return []Species{Plant}
	case Omnivore:
		return []Species{Plant, Herbivore}
	case Carnivore:
		return []Species{Herbivore, Omnivore}
	case ApexPredator:
		return []Species{Carnivore, Omnivore, Herbivore}
	case Decomposer:
		return []Species{DeadMatter}
	}
	return nil
}

// Stage classifies an entity's lifecycle by age ratio.
type Stage uint8

const (
	Juvenile Stage = iota
	Adult
	Elder
)

// String returns the display name for a lifecycle stage.
func (st Stage) String() string {
	switch st {
	case Juvenile:
		return "Juvenile"
	case Adult:
		return "Adult"
	case Elder:
		return "Elder"
	}
	return "Unknown"
}

// StageFor derives the lifecycle stage from age and max age.
// Age only increases, so the stage never regresses.
func StageFor(age, maxAge int) Stage {
	if maxAge <= 0 {
		return Adult
	}
	ratio := float64(age) / float64(maxAge)
	switch {
	case ratio < 0.15:
		return Juvenile
	case ratio < 0.75:
		return Adult
	default:
		return Elder
	}
}
