// Package construction implements the pure material, cost,
// compliance, and weather calculators. Everything here is stateless
// arithmetic over fixed coefficient tables.
package construction

import (
	"fmt"
	"math"
	"sort"
)

// Material holds the fixed physical and cost coefficients for a
// construction material.
type Material struct {
	Density  float64 // kg/m³
	Unit     string
	UnitCost float64 // currency per unit
}

// Materials is the coefficient table for supported materials.
var Materials = map[string]Material{
	"concrete": {Density: 2400, Unit: "kg/m³", UnitCost: 120},
	"steel":    {Density: 7850, Unit: "kg/m³", UnitCost: 800},
	"brick":    {Density: 1800, Unit: "kg/m³", UnitCost: 0.5},
	"cement":   {Density: 1440, Unit: "kg/m³", UnitCost: 180},
}

// MaterialNames returns the supported material names, sorted.
func MaterialNames() []string {
	names := make([]string, 0, len(Materials))
	for name := range Materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dimensions are the measurements of a structural element, in meters.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Volume returns the element's volume in m³.
func (d Dimensions) Volume() float64 {
	return d.Length * d.Width * d.Height
}

// Estimate is the material take-off for one structural element.
type Estimate struct {
	Quantities  map[string]float64 `json:"quantities"`
	Description string             `json:"description"`
}

// CalculateMaterials computes the material quantities for a basic
// structure from its dimensions.
func CalculateMaterials(structure string, d Dimensions) (Estimate, error) {
	v := d.Volume()
	switch structure {
	case "foundation":
		return Estimate{
			Quantities:  map[string]float64{"concrete": v * 0.8, "steel": v * 80},
			Description: fmt.Sprintf("Foundation: %.2fm³ total volume", v),
		}, nil
	case "wall":
		bricks := math.Ceil(v * 500)
		return Estimate{
			Quantities:  map[string]float64{"brick": bricks, "cement": v * 0.3},
			Description: fmt.Sprintf("Wall: %.0f bricks needed", bricks),
		}, nil
	case "slab":
		return Estimate{
			Quantities:  map[string]float64{"concrete": v, "steel": v * 100},
			Description: fmt.Sprintf("Slab: %.2fm³ concrete", v),
		}, nil
	case "beam":
		return Estimate{
			Quantities:  map[string]float64{"concrete": v, "steel": v * 150},
			Description: "Beam: High steel ratio for structural integrity",
		}, nil
	default:
		return Estimate{}, fmt.Errorf("unknown structure %q: must be one of: foundation, wall, slab, beam", structure)
	}
}

// EstimateCost computes the cost of a material quantity from the fixed
// unit-cost table.
func EstimateCost(material string, quantity float64) (float64, error) {
	mat, ok := Materials[material]
	if !ok {
		return 0, fmt.Errorf("unknown material %q", material)
	}
	return quantity * mat.UnitCost, nil
}
