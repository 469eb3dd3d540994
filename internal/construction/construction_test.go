package construction

import (
	"math"
	"strings"
	"testing"
)

// --- Materials ---

func TestCalculateMaterials_Foundation(t *testing.T) {
	est, err := CalculateMaterials("foundation", Dimensions{Length: 10, Width: 5, Height: 2})
	if err != nil {
		t.Fatalf("CalculateMaterials: %v", err)
	}
	// volume = 100
	if got := est.Quantities["concrete"]; math.Abs(got-80) > 1e-9 {
		t.Errorf("concrete = %v, want 80", got)
	}
	if got := est.Quantities["steel"]; math.Abs(got-8000) > 1e-9 {
		t.Errorf("steel = %v, want 8000", got)
	}
	if !strings.Contains(est.Description, "100.00m³") {
		t.Errorf("Description = %q, want volume mentioned", est.Description)
	}
}

func TestCalculateMaterials_WallRoundsBricksUp(t *testing.T) {
	est, err := CalculateMaterials("wall", Dimensions{Length: 3, Width: 0.2, Height: 2.5})
	if err != nil {
		t.Fatalf("CalculateMaterials: %v", err)
	}
	// volume = 1.5, bricks = ceil(750) = 750
	if got := est.Quantities["brick"]; got != 750 {
		t.Errorf("brick = %v, want 750", got)
	}
	if got := est.Quantities["cement"]; math.Abs(got-0.45) > 1e-9 {
		t.Errorf("cement = %v, want 0.45", got)
	}
}

func TestCalculateMaterials_BeamSteelRatio(t *testing.T) {
	est, err := CalculateMaterials("beam", Dimensions{Length: 4, Width: 0.3, Height: 0.5})
	if err != nil {
		t.Fatalf("CalculateMaterials: %v", err)
	}
	v := 4 * 0.3 * 0.5
	if got := est.Quantities["steel"]; math.Abs(got-v*150) > 1e-9 {
		t.Errorf("steel = %v, want %v", got, v*150)
	}
}

func TestCalculateMaterials_UnknownStructure(t *testing.T) {
	if _, err := CalculateMaterials("roof", Dimensions{}); err == nil {
		t.Error("unknown structure should fail")
	}
}

func TestEstimateCost(t *testing.T) {
	cost, err := EstimateCost("concrete", 12.5)
	if err != nil {
		t.Fatalf("EstimateCost: %v", err)
	}
	if math.Abs(cost-1500) > 1e-9 {
		t.Errorf("cost = %v, want 1500", cost)
	}
}

func TestEstimateCost_UnknownMaterial(t *testing.T) {
	if _, err := EstimateCost("marble", 1); err == nil {
		t.Error("unknown material should fail")
	}
}

func TestMaterialNames_Sorted(t *testing.T) {
	names := MaterialNames()
	want := []string{"brick", "cement", "concrete", "steel"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

// --- Compliance ---

func TestCheckCompliance_Compliant(t *testing.T) {
	violations, err := CheckCompliance(Dimensions{Length: 20, Width: 10, Height: 9}, "residential")
	if err != nil {
		t.Fatalf("CheckCompliance: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("violations = %v, want none", violations)
	}
}

func TestCheckCompliance_HeightViolation(t *testing.T) {
	violations, err := CheckCompliance(Dimensions{Length: 20, Width: 10, Height: 18}, "residential")
	if err != nil {
		t.Fatalf("CheckCompliance: %v", err)
	}
	if len(violations) != 1 || !strings.Contains(violations[0], "Height exceeds 15m") {
		t.Errorf("violations = %v, want height violation", violations)
	}
}

func TestCheckCompliance_CoverageViolation(t *testing.T) {
	violations, err := CheckCompliance(Dimensions{Length: 40, Width: 20, Height: 10}, "residential")
	if err != nil {
		t.Fatalf("CheckCompliance: %v", err)
	}
	// 800m² footprint > 1000 * 0.6
	found := false
	for _, v := range violations {
		if strings.Contains(v, "coverage") {
			found = true
		}
	}
	if !found {
		t.Errorf("violations = %v, want coverage violation", violations)
	}
}

func TestCheckCompliance_CommercialAllowsTaller(t *testing.T) {
	violations, err := CheckCompliance(Dimensions{Length: 20, Width: 10, Height: 20}, "commercial")
	if err != nil {
		t.Fatalf("CheckCompliance: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("violations = %v, want none at 20m commercial", violations)
	}
}

func TestCheckCompliance_UnknownBuildingType(t *testing.T) {
	if _, err := CheckCompliance(Dimensions{}, "agricultural"); err == nil {
		t.Error("unknown building type should fail")
	}
}

// --- Weather ---

func TestWeatherImpact_KnownCombination(t *testing.T) {
	got := WeatherImpact("concrete_pour", "rainy")
	if !strings.Contains(got, "DELAY") {
		t.Errorf("impact = %q, want delay recommendation", got)
	}
}

func TestWeatherImpact_UnlistedCombinationProceeds(t *testing.T) {
	got := WeatherImpact("roofing", "windy")
	if got != defaultImpact {
		t.Errorf("impact = %q, want default", got)
	}
}

func TestRandomCondition_AlwaysValid(t *testing.T) {
	valid := map[string]bool{}
	for _, c := range Conditions {
		valid[c] = true
	}
	for i := 0; i < 50; i++ {
		if c := RandomCondition(); !valid[c] {
			t.Fatalf("RandomCondition returned %q", c)
		}
	}
}
