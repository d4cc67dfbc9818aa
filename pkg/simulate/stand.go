package simulate

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Rnyoms/LHC-NYOM/pkg/geo"
	"github.com/Rnyoms/LHC-NYOM/pkg/inventory"
	"github.com/Rnyoms/LHC-NYOM/pkg/spec"
	"github.com/Rnyoms/LHC-NYOM/pkg/species"
	"github.com/Rnyoms/LHC-NYOM/pkg/validation"
)

// ErrNoTrees signals that no class produced any tree.
var ErrNoTrees = errors.New("simulate: no trees produced")

// Options tunes a stand simulation.
type Options struct {
	MaxIterations  int
	SampleAttempts int
	Policy         species.Policy
	Members        geo.MemberSelection

	// Progress, if set, is called after each class is filled.
	Progress func(ClassResult)
}

// OptionsFromSpec reads the run settings of a plot spec.
func OptionsFromSpec(s *spec.PlotSpec) (Options, error) {
	policy, err := species.ParsePolicy(s.SpeciesPolicy)
	if err != nil {
		return Options{}, err
	}
	members := geo.ByCount
	if s.MemberSelection == spec.MemberByArea {
		members = geo.ByArea
	}
	return Options{
		MaxIterations:  s.MaxIterations,
		SampleAttempts: s.SampleAttempts,
		Policy:         policy,
		Members:        members,
	}, nil
}

// Stand is the placed, unindexed tree set of one run.
type Stand struct {
	Trees             []inventory.Tree `json:"-"`
	Classes           []ClassResult    `json:"classes"`
	CentroidFallbacks int              `json:"centroid_fallbacks"`
}

// Simulate fills every class in order, shuffles the merged trees and gives
// each an independently sampled position inside boundary. All randomness
// is drawn from rng.
//
// When no class yields a tree the returned stand carries the class results
// and the error is ErrNoTrees.
func Simulate(ctx context.Context, rng *rand.Rand, classes []spec.ClassSpec, boundary *geo.Boundary, opts Options) (*Stand, *validation.Report, error) {
	report := validation.NewReport()
	if boundary == nil {
		report.Errorf(validation.LevelSpatial, "plot boundary is missing")
		return nil, report, geo.ErrEmptyBoundary
	}

	stand := &Stand{Classes: make([]ClassResult, 0, len(classes))}
	for _, class := range classes {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}
		dist, err := species.NewDistribution(class.Species, opts.Policy)
		if err != nil {
			return nil, report, fmt.Errorf("class %s: %w", class.Name, err)
		}

		res := SimulateClass(rng, class, dist, opts.MaxIterations)
		stand.Classes = append(stand.Classes, res)
		stand.Trees = append(stand.Trees, res.Trees...)
		reportClass(report, res)
		if opts.Progress != nil {
			opts.Progress(res)
		}
	}

	if len(stand.Trees) == 0 {
		report.AddWarning(validation.Result{
			Level:   validation.LevelSimulation,
			Message: "no trees produced; check target volumes against class bounds",
		})
		return stand, report, ErrNoTrees
	}

	rng.Shuffle(len(stand.Trees), func(i, j int) {
		stand.Trees[i], stand.Trees[j] = stand.Trees[j], stand.Trees[i]
	})

	for i := range stand.Trees {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, report, err
			}
		}
		p, ok := boundary.Sample(rng, opts.SampleAttempts, opts.Members)
		if !ok {
			stand.CentroidFallbacks++
		}
		stand.Trees[i].SetPosition(p)
	}

	if stand.CentroidFallbacks > 0 {
		report.AddInfo(validation.Result{
			Level:   validation.LevelSpatial,
			Message: fmt.Sprintf("%d of %d trees placed at a member centroid after %d missed draws",
				stand.CentroidFallbacks, len(stand.Trees), opts.SampleAttempts),
		})
	}
	report.AddInfo(validation.Result{
		Level:   validation.LevelSimulation,
		Message: fmt.Sprintf("placed %d trees in %d classes", len(stand.Trees), len(classes)),
	})
	return stand, report, nil
}

func reportClass(r *validation.Report, res ClassResult) {
	switch {
	case res.TargetVolume <= 0:
		r.AddInfo(validation.Result{
			Level:   validation.LevelSimulation,
			Message: fmt.Sprintf("class %s skipped (target %.2f m³)", res.Class, res.TargetVolume),
		})
	case res.Exhausted:
		r.AddWarning(validation.Result{
			Level:   validation.LevelSimulation,
			Message: fmt.Sprintf("class %s: iteration budget exhausted at %.2f of %.2f m³ (delta %+.2f, tolerance %.2f)",
				res.Class, res.Volume, res.TargetVolume, res.Delta(), res.Tolerance),
			ActualValue: res.Volume,
			Expected:    fmt.Sprintf("%.2f ± %.2f", res.TargetVolume, res.Tolerance),
		})
	default:
		r.AddInfo(validation.Result{
			Level:   validation.LevelSimulation,
			Message: fmt.Sprintf("class %s: %d trees, %.2f m³ (target %.2f ± %.2f) after %d draws",
				res.Class, res.Count, res.Volume, res.TargetVolume, res.Tolerance, res.Iterations),
		})
	}
}
