package construction

import "fmt"

// BuildingRules are the simplified code limits for a building type.
type BuildingRules struct {
	MaxHeight   float64 // meters
	MinSetback  float64 // meters
	MaxCoverage float64 // fraction of site area
}

// referenceSiteArea is the site area, in m², that coverage fractions
// are measured against.
const referenceSiteArea = 1000

// buildingCodes holds the limits per building type.
var buildingCodes = map[string]BuildingRules{
	"residential": {MaxHeight: 15, MinSetback: 3, MaxCoverage: 0.6},
	"commercial":  {MaxHeight: 25, MinSetback: 5, MaxCoverage: 0.8},
	"industrial":  {MaxHeight: 35, MinSetback: 10, MaxCoverage: 0.9},
}

// CheckCompliance verifies a structure's dimensions against the
// building-code limits for its type. It returns the list of
// violations; an empty list means compliant.
func CheckCompliance(d Dimensions, buildingType string) ([]string, error) {
	rules, ok := buildingCodes[buildingType]
	if !ok {
		return nil, fmt.Errorf("unknown building type %q: must be one of: residential, commercial, industrial", buildingType)
	}

	var violations []string
	if d.Height > rules.MaxHeight {
		violations = append(violations, fmt.Sprintf("Height exceeds %.0fm limit", rules.MaxHeight))
	}
	// Footprints are judged against a 1000m² reference site.
	area := d.Length * d.Width
	if area > referenceSiteArea*rules.MaxCoverage {
		violations = append(violations, "Site coverage exceeds limits")
	}
	return violations, nil
}
