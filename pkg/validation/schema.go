package validation

import (
	"fmt"
	"slices"

	"github.com/Rnyoms/LHC-NYOM/pkg/spec"
	"github.com/Rnyoms/LHC-NYOM/pkg/volume"
)

// ValidateSchema performs schema validation on a parsed PlotSpec.
// It checks every configuration error before any tree is simulated.
func ValidateSchema(s *spec.PlotSpec) *Report {
	r := NewReport()

	validateRun(s, r)
	validateCatalog(s, r)
	validateClasses(s, r)

	return r
}

func validateRun(s *spec.PlotSpec, r *Report) {
	if s.MaxIterations <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "max_iterations must be greater than 0",
			SpecPath:    "max_iterations",
			ActualValue: s.MaxIterations,
			Expected:    "> 0",
		})
	}
	if s.SampleAttempts <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "sample_attempts must be greater than 0",
			SpecPath:    "sample_attempts",
			ActualValue: s.SampleAttempts,
			Expected:    "> 0",
		})
	}
	policies := []string{spec.PolicySplitRemainder, spec.PolicyExplicitOnly}
	if !slices.Contains(policies, s.SpeciesPolicy) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("unknown species_policy %q", s.SpeciesPolicy),
			SpecPath:    "species_policy",
			ActualValue: s.SpeciesPolicy,
			Expected:    "split_remainder | explicit_only",
			Suggestions: Suggest(s.SpeciesPolicy, policies),
		})
	}
	selections := []string{spec.MemberByCount, spec.MemberByArea}
	if !slices.Contains(selections, s.MemberSelection) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("unknown member_selection %q", s.MemberSelection),
			SpecPath:    "member_selection",
			ActualValue: s.MemberSelection,
			Expected:    "count | area",
		})
	}
	if z := s.Projection.Zone; z < 0 || z > 60 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("projection.utm_zone %d is outside valid range (1-60, 0 = auto)", z),
			SpecPath:    "projection.utm_zone",
			ActualValue: z,
			Expected:    "0-60",
		})
	}
}

func validateCatalog(s *spec.PlotSpec, r *Report) {
	if len(s.Species) == 0 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "species catalog must contain at least one species",
			SpecPath: "species",
			Expected: "at least 1 species",
		})
		return
	}
	seen := make(map[string]bool, len(s.Species))
	for i, name := range s.Species {
		if name == "" {
			r.AddError(Result{
				Level:    LevelSchema,
				Message:  fmt.Sprintf("species[%d] has an empty name", i),
				SpecPath: fmt.Sprintf("species[%d]", i),
			})
		}
		if seen[name] {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("species %q is listed twice", name),
				SpecPath:    fmt.Sprintf("species[%d]", i),
				ActualValue: name,
			})
		}
		seen[name] = true
	}
}

func validateClasses(s *spec.PlotSpec, r *Report) {
	if len(s.Classes) == 0 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "classes must contain at least one diameter class",
			SpecPath: "classes",
			Expected: "at least 1 class",
		})
		return
	}

	names := make(map[string]int, len(s.Classes))
	positive := 0
	for i, c := range s.Classes {
		path := fmt.Sprintf("classes[%d]", i)
		if c.Name == "" {
			r.AddError(Result{
				Level:    LevelSchema,
				Message:  fmt.Sprintf("%s: name is required", path),
				SpecPath: path + ".name",
			})
		} else if j, dup := names[c.Name]; dup {
			r.AddError(Result{
				Level:        LevelSchema,
				Message:      fmt.Sprintf("%s: duplicate class name %q", path, c.Name),
				SpecPath:     path + ".name",
				ActualValue:  c.Name,
				ConflictWith: fmt.Sprintf("classes[%d]", j),
			})
		} else {
			names[c.Name] = i
		}

		validateBounds(c, path, r)
		validateVolume(c, path, r)
		validateClassSpecies(s, c, path, r)
		if c.TargetVolume > 0 {
			positive++
		}
	}

	if positive == 0 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "no class has a positive target_volume; nothing to simulate",
			SpecPath: "classes",
			Expected: "at least one target_volume > 0",
		})
	}
}

func validateBounds(c spec.ClassSpec, path string, r *Report) {
	if c.DMin <= 0 || c.HMin <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s (%s): d_min and h_min must be greater than 0", path, c.Name),
			SpecPath:    path,
			ActualValue: fmt.Sprintf("d_min=%d h_min=%d", c.DMin, c.HMin),
			Expected:    "> 0",
			Suggestions: []string{"Use a standard class name (20-39, 40-49, 50-59, 60-99, 100UP) to inherit its bounds"},
		})
	}
	if c.DMin > c.DMax {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s (%s): d_min (%d) must not exceed d_max (%d)", path, c.Name, c.DMin, c.DMax),
			SpecPath:    path + ".d_min",
			ActualValue: c.DMin,
			Expected:    fmt.Sprintf("<= %d", c.DMax),
		})
	}
	if c.HMin > c.HMax {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s (%s): h_min (%d) must not exceed h_max (%d)", path, c.Name, c.HMin, c.HMax),
			SpecPath:    path + ".h_min",
			ActualValue: c.HMin,
			Expected:    fmt.Sprintf("<= %d", c.HMax),
		})
	}
}

func validateVolume(c spec.ClassSpec, path string, r *Report) {
	if c.TargetVolume < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s (%s): target_volume must not be negative", path, c.Name),
			SpecPath:    path + ".target_volume",
			ActualValue: c.TargetVolume,
			Expected:    ">= 0",
		})
	}
	if c.Tolerance < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s (%s): tolerance must not be negative", path, c.Name),
			SpecPath:    path + ".tolerance",
			ActualValue: c.Tolerance,
			Expected:    ">= 0",
		})
	}
	if c.TargetVolume == 0 {
		r.AddWarning(Result{
			Level:    LevelSchema,
			Message:  fmt.Sprintf("%s (%s): target_volume is 0; class produces no trees", path, c.Name),
			SpecPath: path + ".target_volume",
		})
		return
	}
	if c.TargetVolume < 0 || c.DMin <= 0 || c.HMin <= 0 {
		return
	}

	smallest := volume.Tree(c.DMin, c.HMin)
	if smallest > c.TargetVolume+c.Tolerance {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s (%s): smallest possible tree (%.2f m³) exceeds target + tolerance (%.2f m³); class produces no trees", path, c.Name, smallest, c.TargetVolume+c.Tolerance),
			SpecPath:    path + ".target_volume",
			ActualValue: c.TargetVolume,
			Expected:    fmt.Sprintf(">= %.2f", smallest-c.Tolerance),
		})
	}
	if c.Tolerance < volume.Resolution/2 {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s (%s): tolerance %.3f is below the volume resolution; the fill will likely exhaust its iteration budget", path, c.Name, c.Tolerance),
			SpecPath:    path + ".tolerance",
			ActualValue: c.Tolerance,
			Expected:    fmt.Sprintf(">= %.3f", volume.Resolution/2),
		})
	}
	if n := c.EstimatedTrees(); n > 0 {
		r.AddInfo(Result{
			Level:   LevelSchema,
			Message: fmt.Sprintf("%s: about %d trees expected (mean %.2f m³)", c.Name, n, c.MeanVolume),
		})
	}
}

func validateClassSpecies(s *spec.PlotSpec, c spec.ClassSpec, path string, r *Report) {
	if len(c.Species) == 0 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  fmt.Sprintf("%s (%s): species set is empty", path, c.Name),
			SpecPath: path + ".species",
			Expected: "at least 1 species",
		})
		return
	}

	keys := make([]string, 0, len(c.Species))
	for name := range c.Species {
		keys = append(keys, name)
	}
	slices.Sort(keys)

	sum := 0
	for _, name := range keys {
		pct := c.Species[name]
		spPath := fmt.Sprintf("%s.species.%s", path, name)
		if pct < 0 || pct > 100 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s (%s): species %q percentage %d is outside 0-100", path, c.Name, name, pct),
				SpecPath:    spPath,
				ActualValue: pct,
				Expected:    "0-100",
			})
		}
		if pct > 0 {
			sum += pct
		}
		if !slices.Contains(s.Species, name) {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s (%s): species %q is not in the species catalog", path, c.Name, name),
				SpecPath:    spPath,
				ActualValue: name,
				Suggestions: Suggest(name, s.Species),
			})
		}
	}
	if sum > 100 {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s (%s): species percentages sum to %d%%; they will be normalized", path, c.Name, sum),
			SpecPath:    path + ".species",
			ActualValue: sum,
			Expected:    "<= 100",
		})
	}
}
