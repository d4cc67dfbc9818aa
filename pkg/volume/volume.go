// Package volume holds the standing-volume formula used for synthetic trees.
package volume

import "math"

const (
	// QuarterPi approximates pi/4 for the basal-area term.
	QuarterPi = 0.7854
	// FormFactor converts the cylinder volume to a stem volume.
	FormFactor = 0.6
	// Resolution is the rounding step of reported volumes (m³).
	Resolution = 0.01
)

// Tree returns the stem volume in m³ of a tree with the given diameter at
// breast height (cm) and height (m), rounded to two decimals.
func Tree(diameterCM, heightM int) float64 {
	d := float64(diameterCM) / 100
	return Round2(QuarterPi * d * d * float64(heightM) * FormFactor)
}

// Round2 rounds v to two decimals, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
