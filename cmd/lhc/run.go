package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/cheggaaa/pb.v1"
	"gopkg.in/yaml.v3"

	"github.com/Rnyoms/LHC-NYOM/pkg/boundary"
	"github.com/Rnyoms/LHC-NYOM/pkg/export"
	"github.com/Rnyoms/LHC-NYOM/pkg/pipeline"
	"github.com/Rnyoms/LHC-NYOM/pkg/simulate"
	"github.com/Rnyoms/LHC-NYOM/pkg/spec"
	"github.com/Rnyoms/LHC-NYOM/pkg/validation"
)

type simulateOptions struct {
	seed    uint64
	outDir  string
	name    string
	format  string
	drawMap bool
	quiet   bool
}

// loadAndValidate loads plot.yaml and runs schema validation.
func loadAndValidate(projectPath string) (*spec.PlotSpec, *validation.Report, error) {
	plotSpec, err := spec.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading spec: %w", err)
	}
	return plotSpec, validation.ValidateSchema(plotSpec), nil
}

func runValidate(projectPath string) error {
	plotSpec, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if plotSpec.Boundary == "" {
		report.AddError(validation.Result{
			Level:    validation.LevelSpatial,
			Message:  "no boundary file configured",
			SpecPath: "boundary",
		})
	} else if _, err := boundary.LoadFile(plotSpec.Boundary); err != nil {
		report.AddError(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("boundary cannot be loaded: %v", err),
			SpecPath:    "boundary",
			ActualValue: plotSpec.Boundary,
		})
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runSimulate(ctx context.Context, projectPath string, opts simulateOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	plotSpec, schemaReport, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !schemaReport.Valid {
		printValidationReport(schemaReport)
		return fmt.Errorf("plot.yaml has validation errors")
	}
	if opts.name != "" {
		plotSpec.Name = opts.name
	}
	if plotSpec.Boundary == "" {
		return fmt.Errorf("plot.yaml names no boundary file")
	}

	b, err := boundary.LoadFile(plotSpec.Boundary)
	if err != nil {
		return fmt.Errorf("loading boundary: %w", err)
	}
	slog.Debug("boundary loaded", "path", plotSpec.Boundary, "members", b.Len(), "bound", b.Bound())

	var bar *pb.ProgressBar
	runOpts := pipeline.Options{Seed: opts.seed}
	if !opts.quiet {
		bar = pb.New(len(plotSpec.Classes))
		bar.Output = os.Stderr
		bar.ShowTimeLeft = false
		bar.Start()
		runOpts.Progress = func(c simulate.ClassResult) {
			slog.Debug("class filled", "class", c.Class, "trees", c.Count, "volume", c.Volume, "iterations", c.Iterations)
			bar.Increment()
		}
	}

	res, report, err := pipeline.Run(ctx, plotSpec, b, runOpts)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		printValidationReport(report)
		if errors.Is(err, simulate.ErrNoTrees) {
			printClassTable(res.Classes)
			return fmt.Errorf("no trees simulated; raise target volumes or widen class bounds")
		}
		return err
	}
	slog.Info("simulation complete", "run", res.RunID, "plot", res.Plot, "seed", res.Seed, "trees", len(res.Trees))

	printClassTable(res.Classes)
	fmt.Println()
	printRecapTable(res.Summary)
	if len(report.Warnings) > 0 {
		fmt.Println()
		printValidationReport(report)
	}

	path, err := export.Save(opts.outDir, format, res)
	if err != nil {
		return err
	}
	fmt.Printf("\nSaved %s\n", path)

	if opts.drawMap {
		mapPath, err := export.SaveMap(opts.outDir, res, b)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", mapPath)
	}
	return nil
}

func runDefaults() error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(spec.Defaults())
}
