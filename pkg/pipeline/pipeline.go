// Package pipeline runs one plot simulation end to end: schema validation,
// class simulation and placement, lane indexing and aggregation.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/Rnyoms/LHC-NYOM/pkg/geo"
	"github.com/Rnyoms/LHC-NYOM/pkg/inventory"
	"github.com/Rnyoms/LHC-NYOM/pkg/lanes"
	"github.com/Rnyoms/LHC-NYOM/pkg/simulate"
	"github.com/Rnyoms/LHC-NYOM/pkg/spec"
	"github.com/Rnyoms/LHC-NYOM/pkg/summary"
	"github.com/Rnyoms/LHC-NYOM/pkg/validation"
)

// ErrInvalidSpec is returned when schema validation reports errors.
var ErrInvalidSpec = errors.New("pipeline: plot spec has validation errors")

// seedStream is the PCG stream constant mixed with the run seed.
const seedStream = 0x9e3779b97f4a7c15

// Options overrides run settings from the plot spec.
type Options struct {
	// Seed, if nonzero, replaces the configured seed.
	Seed uint64
	// Projector, if set, replaces the configured or derived UTM zone.
	Projector geo.Projector
	// Progress is forwarded to the class simulator.
	Progress func(simulate.ClassResult)
}

// Result is the output of one run.
type Result struct {
	RunID             uuid.UUID              `json:"run_id"`
	Plot              string                 `json:"plot"`
	Seed              uint64                 `json:"seed"`
	Trees             []inventory.Tree       `json:"trees"`
	Classes           []simulate.ClassResult `json:"classes"`
	Summary           *summary.Summary       `json:"summary"`
	Lanes             lanes.Index            `json:"lanes"`
	CentroidFallbacks int                    `json:"centroid_fallbacks"`
}

// Run executes the full pipeline. The returned report collects findings
// from every stage that ran, also when err is non-nil. A run that produces
// no trees returns simulate.ErrNoTrees together with a Result holding the
// per-class outcomes; any other failure aborts the run without output.
func Run(ctx context.Context, s *spec.PlotSpec, boundary *geo.Boundary, opts Options) (*Result, *validation.Report, error) {
	report := validation.ValidateSchema(s)
	if !report.Valid {
		return nil, report, ErrInvalidSpec
	}

	simOpts, err := simulate.OptionsFromSpec(s)
	if err != nil {
		return nil, report, err
	}
	simOpts.Progress = opts.Progress

	seed := Seed(s.Seed, opts.Seed)
	rng := rand.New(rand.NewPCG(seed, seed^seedStream))

	stand, simReport, err := simulate.Simulate(ctx, rng, s.Classes, boundary, simOpts)
	report.Merge(simReport)
	if errors.Is(err, simulate.ErrNoTrees) {
		return &Result{
			RunID:   uuid.New(),
			Plot:    s.Name,
			Seed:    seed,
			Trees:   []inventory.Tree{},
			Classes: stand.Classes,
			Summary: summary.Aggregate(nil),
		}, report, err
	}
	if err != nil {
		return nil, report, err
	}

	proj := opts.Projector
	if proj == nil {
		if proj, err = projectorFor(s.Projection, boundary); err != nil {
			report.Errorf(validation.LevelSpatial, "projection setup failed: %v", err)
			return nil, report, err
		}
	}

	idx, err := lanes.Assign(stand.Trees, boundary, proj)
	if err != nil {
		report.Errorf(validation.LevelSpatial, "lane assignment failed: %v", err)
		return nil, report, fmt.Errorf("assigning lanes: %w", err)
	}
	if idx.BoundaryFallback {
		report.Warnf(validation.LevelSpatial,
			"boundary could not be projected; lanes counted from the westernmost tree")
	}
	report.Infof(validation.LevelSpatial, "%d lanes of %.0f m in %s", idx.Lanes, lanes.Width, idx.Projection)

	return &Result{
		RunID:             uuid.New(),
		Plot:              s.Name,
		Seed:              seed,
		Trees:             stand.Trees,
		Classes:           stand.Classes,
		Summary:           summary.Aggregate(stand.Trees),
		Lanes:             idx,
		CentroidFallbacks: stand.CentroidFallbacks,
	}, report, nil
}

// Seed picks the run seed: the override if set, else the configured seed,
// else a fresh nonzero random one.
func Seed(configured, override uint64) uint64 {
	if override != 0 {
		return override
	}
	if configured != 0 {
		return configured
	}
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

func projectorFor(def spec.ProjectionDef, b *geo.Boundary) (geo.Projector, error) {
	if def.Zone != 0 {
		return geo.NewUTM(def.Zone, def.South)
	}
	return geo.UTMFor(b)
}
