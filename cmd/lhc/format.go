package main

import (
	"fmt"

	"github.com/Rnyoms/LHC-NYOM/pkg/simulate"
	"github.com/Rnyoms/LHC-NYOM/pkg/summary"
	"github.com/Rnyoms/LHC-NYOM/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.SpecPath != "" {
				fmt.Printf("    -> %s = %v\n", e.SpecPath, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			if e.ConflictWith != "" {
				fmt.Printf("    conflicts with: %s\n", e.ConflictWith)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * did you mean %q?\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.SpecPath != "" {
				fmt.Printf("    -> %s = %v\n", w.SpecPath, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printClassTable(classes []simulate.ClassResult) {
	fmt.Println("Classes")
	fmt.Println("=======")
	fmt.Printf("%-8s %8s %10s %10s %8s %10s  %s\n",
		"Class", "Trees", "Volume", "Target", "Delta", "Draws", "Status")
	fmt.Printf("%-8s %8s %10s %10s %8s %10s  %s\n",
		"--------", "--------", "----------", "----------", "--------", "----------", "------")
	for _, c := range classes {
		fmt.Printf("%-8s %8d %10.2f %10.2f %+8.2f %10d  %s\n",
			c.Class, c.Count, c.Volume, c.TargetVolume, c.Delta(), c.Iterations, classStatus(c))
	}
}

func classStatus(c simulate.ClassResult) string {
	switch {
	case c.TargetVolume <= 0:
		return "skipped"
	case c.WithinTolerance():
		return "ok"
	case c.Exhausted:
		return "budget exhausted"
	default:
		return "short"
	}
}

func printRecapTable(s *summary.Summary) {
	fmt.Println("Rekap")
	fmt.Println("=====")
	fmt.Printf("%-20s %-8s %8s %12s\n", "Jenis", "Kelas", "Jumlah", "Volume (m³)")
	fmt.Printf("%-20s %-8s %8s %12s\n", "--------------------", "--------", "--------", "------------")
	for _, r := range s.Rows {
		fmt.Printf("%-20s %-8s %8d %12.2f\n", r.Species, r.Class, r.Count, r.VolumeM3)
	}
	fmt.Printf("%-20s %-8s %8d %12.2f\n", "TOTAL", "", s.TotalTrees, s.TotalVolume)
	fmt.Println()
	printLanes(s.Lanes)
}

func printLanes(lanes []summary.LaneRow) {
	if len(lanes) == 0 {
		fmt.Println("Lanes: none")
		return
	}
	busiest := lanes[0]
	for _, l := range lanes[1:] {
		if l.Count > busiest.Count {
			busiest = l
		}
	}
	fmt.Printf("Lanes: %d occupied, busiest is lane %d with %d trees (%.2f m³)\n",
		len(lanes), busiest.Lane, busiest.Count, busiest.VolumeM3)
}
