package validation

import (
	"strings"
	"testing"

	"github.com/Rnyoms/LHC-NYOM/pkg/spec"
)

func validSpec() *spec.PlotSpec {
	s := &spec.PlotSpec{
		Name: "Petak-1",
		Classes: []spec.ClassSpec{
			{Name: "40-49", TargetVolume: 1.38, Tolerance: 0.1, Species: map[string]int{"Merbau": 100}},
			{Name: "60-99", TargetVolume: 20, Tolerance: 0.5},
		},
	}
	s.ApplyDefaults()
	return s
}

func hasError(r *Report, pathPrefix string) bool {
	for _, e := range r.Errors {
		if strings.HasPrefix(e.SpecPath, pathPrefix) {
			return true
		}
	}
	return false
}

func hasWarning(r *Report, pathPrefix string) bool {
	for _, w := range r.Warnings {
		if strings.HasPrefix(w.SpecPath, pathPrefix) {
			return true
		}
	}
	return false
}

func TestValidSpec(t *testing.T) {
	r := ValidateSchema(validSpec())
	if !r.Valid {
		for _, e := range r.Errors {
			t.Errorf("unexpected error: %s", e.Message)
		}
	}
	if len(r.Info) != 2 {
		t.Errorf("expected 2 tree-count estimates, got %d", len(r.Info))
	}
}

func TestDefaultsValid(t *testing.T) {
	r := ValidateSchema(spec.Defaults())
	if !r.Valid {
		t.Errorf("defaults should validate: %s", r.Summary)
	}
}

func TestNoClasses(t *testing.T) {
	s := validSpec()
	s.Classes = nil
	r := ValidateSchema(s)
	if r.Valid || !hasError(r, "classes") {
		t.Error("expected error for missing classes")
	}
}

func TestAllTargetsZero(t *testing.T) {
	s := validSpec()
	for i := range s.Classes {
		s.Classes[i].TargetVolume = 0
	}
	r := ValidateSchema(s)
	if r.Valid {
		t.Error("expected error when no class has a positive target")
	}
	if !hasWarning(r, "classes[0].target_volume") {
		t.Error("expected per-class warning for zero target")
	}
}

func TestZeroTargetOneClass(t *testing.T) {
	s := validSpec()
	s.Classes[1].TargetVolume = 0
	r := ValidateSchema(s)
	if !r.Valid {
		t.Errorf("a single zero-target class should only warn: %s", r.Summary)
	}
	if !hasWarning(r, "classes[1].target_volume") {
		t.Error("expected warning for zero target")
	}
}

func TestNegativeVolumes(t *testing.T) {
	s := validSpec()
	s.Classes[0].TargetVolume = -1
	s.Classes[1].Tolerance = -0.1
	r := ValidateSchema(s)
	if !hasError(r, "classes[0].target_volume") {
		t.Error("expected error for negative target")
	}
	if !hasError(r, "classes[1].tolerance") {
		t.Error("expected error for negative tolerance")
	}
}

func TestInvertedBounds(t *testing.T) {
	s := validSpec()
	s.Classes = append(s.Classes, spec.ClassSpec{
		Name: "custom", DMin: 50, DMax: 40, HMin: 12, HMax: 10,
		TargetVolume: 3, Tolerance: 0.1, Species: map[string]int{"Merbau": 0},
	})
	r := ValidateSchema(s)
	if !hasError(r, "classes[2].d_min") {
		t.Error("expected error for d_min > d_max")
	}
	if !hasError(r, "classes[2].h_min") {
		t.Error("expected error for h_min > h_max")
	}
}

func TestMissingBoundsForCustomClass(t *testing.T) {
	s := validSpec()
	s.Classes = append(s.Classes, spec.ClassSpec{Name: "custom", TargetVolume: 3, Tolerance: 0.1})
	s.ApplyDefaults()
	r := ValidateSchema(s)
	if !hasError(r, "classes[2]") {
		t.Error("expected error for a non-standard class without bounds")
	}
}

func TestDuplicateClass(t *testing.T) {
	s := validSpec()
	s.Classes[1].Name = "40-49"
	r := ValidateSchema(s)
	found := false
	for _, e := range r.Errors {
		if e.ConflictWith == "classes[0]" {
			found = true
		}
	}
	if !found {
		t.Error("expected duplicate class error conflicting with classes[0]")
	}
}

func TestEmptySpeciesSet(t *testing.T) {
	s := validSpec()
	s.Classes[0].Species = map[string]int{}
	r := ValidateSchema(s)
	if !hasError(r, "classes[0].species") {
		t.Error("expected error for empty species set")
	}
}

func TestUnknownSpeciesSuggestion(t *testing.T) {
	s := validSpec()
	s.Classes[0].Species["Merbua"] = 20
	r := ValidateSchema(s)
	var res *Result
	for i := range r.Errors {
		if r.Errors[i].SpecPath == "classes[0].species.Merbua" {
			res = &r.Errors[i]
		}
	}
	if res == nil {
		t.Fatal("expected unknown species error")
	}
	if len(res.Suggestions) == 0 || res.Suggestions[0] != "Merbau" {
		t.Errorf("suggestions = %v, want Merbau first", res.Suggestions)
	}
}

func TestPercentageRange(t *testing.T) {
	s := validSpec()
	s.Classes[0].Species["Kayu Indah"] = 120
	r := ValidateSchema(s)
	if !hasError(r, "classes[0].species.Kayu Indah") {
		t.Error("expected error for percentage > 100")
	}
	if !hasWarning(r, "classes[0].species") {
		t.Error("expected warning for percentage sum > 100")
	}
}

func TestUnreachableTarget(t *testing.T) {
	s := validSpec()
	// Smallest 100UP tree is 0.7854 * 1 * 17 * 0.6 = 8.01 m³.
	s.Classes = append(s.Classes, spec.ClassSpec{Name: "100UP", TargetVolume: 2, Tolerance: 0.1})
	s.ApplyDefaults()
	r := ValidateSchema(s)
	if !r.Valid {
		t.Errorf("unreachable target should warn, not fail: %s", r.Summary)
	}
	if !hasWarning(r, "classes[2].target_volume") {
		t.Error("expected unreachable-target warning")
	}
}

func TestTinyTolerance(t *testing.T) {
	s := validSpec()
	s.Classes[0].Tolerance = 0
	r := ValidateSchema(s)
	if !hasWarning(r, "classes[0].tolerance") {
		t.Error("expected warning for zero tolerance")
	}
}

func TestRunSettings(t *testing.T) {
	s := validSpec()
	s.MaxIterations = -1
	s.SampleAttempts = 0
	s.SpeciesPolicy = "explicit_onyl"
	s.MemberSelection = "random"
	s.Projection.Zone = 61
	r := ValidateSchema(s)
	for _, path := range []string{"max_iterations", "sample_attempts", "species_policy", "member_selection", "projection.utm_zone"} {
		if !hasError(r, path) {
			t.Errorf("expected error for %s", path)
		}
	}
	for _, e := range r.Errors {
		if e.SpecPath == "species_policy" {
			if len(e.Suggestions) == 0 || e.Suggestions[0] != spec.PolicyExplicitOnly {
				t.Errorf("species_policy suggestions = %v, want explicit_only", e.Suggestions)
			}
		}
	}
}

func TestSuggest(t *testing.T) {
	catalog := []string{"Merbau", "Kelompok Meranti", "Rimba Campuran", "Kayu Indah"}
	tests := []struct {
		in   string
		want string
	}{
		{"merbau", "Merbau"},
		{"Kayu indh", "Kayu Indah"},
		{"Rimba", "Rimba Campuran"},
		{"Kelompok Merant", "Kelompok Meranti"},
	}
	for _, tt := range tests {
		got := Suggest(tt.in, catalog)
		if len(got) == 0 || got[0] != tt.want {
			t.Errorf("Suggest(%q) = %v, want %q first", tt.in, got, tt.want)
		}
	}
	if got := Suggest("Eucalyptus", catalog); len(got) != 0 {
		t.Errorf("Suggest(Eucalyptus) = %v, want none", got)
	}
}
