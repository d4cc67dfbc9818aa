// Package simulate fills diameter classes with synthetic trees and places
// them inside a plot boundary.
package simulate

import (
	"math"
	"math/rand/v2"

	"github.com/Rnyoms/LHC-NYOM/pkg/inventory"
	"github.com/Rnyoms/LHC-NYOM/pkg/spec"
	"github.com/Rnyoms/LHC-NYOM/pkg/species"
	"github.com/Rnyoms/LHC-NYOM/pkg/volume"
)

// ClassResult is the outcome of filling one diameter class.
type ClassResult struct {
	Class        string           `json:"class"`
	TargetVolume float64          `json:"target_volume"`
	Tolerance    float64          `json:"tolerance"`
	Volume       float64          `json:"volume"`
	Count        int              `json:"count"`
	Iterations   int              `json:"iterations"`
	Rejected     int              `json:"rejected"`
	Exhausted    bool             `json:"exhausted"`
	Trees        []inventory.Tree `json:"-"`
}

// Delta returns actual minus target volume.
func (c ClassResult) Delta() float64 {
	return c.Volume - c.TargetVolume
}

// WithinTolerance reports whether the accepted volume is inside the
// target band.
func (c ClassResult) WithinTolerance() bool {
	return math.Abs(c.Delta()) <= c.Tolerance
}

// SimulateClass draws trees for one class until the accepted volume is
// within tolerance of the target or maxIterations draws have been made.
// A draw that would push the total past target+tolerance, or that rounds to
// zero volume, is discarded but still counts as an iteration. Running out of
// iterations is reported with Exhausted, not as an error.
func SimulateClass(rng *rand.Rand, class spec.ClassSpec, dist *species.Distribution, maxIterations int) ClassResult {
	res := ClassResult{
		Class:        class.Name,
		TargetVolume: class.TargetVolume,
		Tolerance:    class.Tolerance,
	}
	if class.TargetVolume <= 0 {
		return res
	}

	ceiling := class.TargetVolume + class.Tolerance
	total := 0.0
	for math.Abs(total-class.TargetVolume) > class.Tolerance && res.Iterations < maxIterations {
		res.Iterations++

		d := class.DMin + rng.IntN(class.DMax-class.DMin+1)
		h := class.HMin + rng.IntN(class.HMax-class.HMin+1)
		v := volume.Tree(d, h)
		if v <= 0 || total+v > ceiling {
			res.Rejected++
			continue
		}

		res.Trees = append(res.Trees, inventory.Tree{
			Class:      class.Name,
			Species:    dist.Pick(rng),
			DiameterCM: d,
			HeightM:    h,
			VolumeM3:   v,
		})
		total += v
	}

	res.Volume = total
	res.Count = len(res.Trees)
	res.Exhausted = math.Abs(total-class.TargetVolume) > class.Tolerance
	return res
}
