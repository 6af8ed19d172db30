package sim

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"terrarium/components"
)

// TerrainType is the static classification of a grid cell.
type TerrainType uint8

const (
	TerrainNormal TerrainType = iota
	TerrainWater
	TerrainMountain
	TerrainFertile
	TerrainBarren
)

// String returns the display name for a terrain type.
func (t TerrainType) String() string {
	switch t {
	case TerrainNormal:
		return "Normal"
	case TerrainWater:
		return "Water"
	case TerrainMountain:
		return "Mountain"
	case TerrainFertile:
		return "Fertile"
	case TerrainBarren:
		return "Barren"
	}
	return "Unknown"
}

// TerrainCell holds per-cell ground properties. Generated at world reset,
// mutated in place by disasters and weather.
type TerrainCell struct {
	Type      TerrainType
	Fertility float64 // plant growth multiplier, [0,2]
	Moisture  float64 // [0,1]
	Elevation float64 // [0,1]
}

// Passable reports whether the species can occupy this cell.
// Only plants tolerate water; mountains block everything.
func (t *TerrainCell) Passable(sp components.Species) bool {
	switch t.Type {
	case TerrainMountain:
		return false
	case TerrainWater:
		return sp == components.Plant
	}
	return true
}

// generateTerrain builds the terrain layer from two coherent noise fields,
// one for elevation and one for moisture.
func generateTerrain(width, height int, seed int64, cfg terrainParams) []TerrainCell {
	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)

	cells := make([]TerrainCell, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fx := float64(x) * cfg.noiseScale
			fy := float64(y) * cfg.noiseScale

			elev := elevNoise.Eval2(fx, fy)
			moist := moistNoise.Eval2(fx, fy)

			cell := TerrainCell{
				Elevation: elev,
				Moisture:  moist,
			}

			switch {
			case elev < cfg.waterLevel:
				cell.Type = TerrainWater
				cell.Moisture = 1
				cell.Fertility = 0.8
			case elev > cfg.mountainLevel:
				cell.Type = TerrainMountain
				cell.Fertility = 0
			case moist > cfg.fertileThreshold:
				cell.Type = TerrainFertile
				cell.Fertility = 1.5
			case moist < cfg.barrenThreshold:
				cell.Type = TerrainBarren
				cell.Fertility = 0.3
			default:
				cell.Type = TerrainNormal
				cell.Fertility = 1.0
			}

			cells[y*width+x] = cell
		}
	}
	return cells
}

// terrainParams are the world-generation thresholds, copied from config so
// the generator has no config dependency.
type terrainParams struct {
	noiseScale       float64
	waterLevel       float64
	mountainLevel    float64
	fertileThreshold float64
	barrenThreshold  float64
}

// enrichFertility raises a cell's fertility, used by decomposer recycling
// and flood silt. Capped at 2.
func (t *TerrainCell) enrichFertility(amount float64) {
	if t.Type == TerrainMountain {
		return
	}
	t.Fertility = clamp(t.Fertility+amount, 0, 2)
}
