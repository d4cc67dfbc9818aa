// Package inventory defines the synthetic tree record shared by the
// simulation, lane indexing, aggregation and export stages.
package inventory

import "github.com/paulmach/orb"

// Tree is one synthetic inventory record.
type Tree struct {
	Class      string  `json:"class"`
	Species    string  `json:"species"`
	DiameterCM int     `json:"diameter_cm"`
	HeightM    int     `json:"height_m"`
	VolumeM3   float64 `json:"volume_m3"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Lane       int     `json:"lane"`
}

// Position returns the tree location as a lon/lat point.
func (t Tree) Position() orb.Point {
	return orb.Point{t.Longitude, t.Latitude}
}

// SetPosition stores a lon/lat point.
func (t *Tree) SetPosition(p orb.Point) {
	t.Longitude = p.X()
	t.Latitude = p.Y()
}

// TotalVolume sums the volumes of trees in order.
func TotalVolume(trees []Tree) float64 {
	total := 0.0
	for _, t := range trees {
		total += t.VolumeM3
	}
	return total
}
