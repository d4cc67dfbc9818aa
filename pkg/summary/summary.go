// Package summary aggregates synthetic trees into the count/volume recap
// ("rekap") tables.
package summary

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/Rnyoms/LHC-NYOM/pkg/inventory"
	"github.com/Rnyoms/LHC-NYOM/pkg/volume"
)

// Row is the recap of one (species, class) pair.
type Row struct {
	Species  string  `json:"species"`
	Class    string  `json:"class"`
	Count    int     `json:"count"`
	VolumeM3 float64 `json:"volume_m3"`
}

// LaneRow is the recap of one survey lane.
type LaneRow struct {
	Lane     int     `json:"lane"`
	Count    int     `json:"count"`
	VolumeM3 float64 `json:"volume_m3"`
}

// Summary is the aggregate of one tree set.
type Summary struct {
	Rows        []Row     `json:"rows"`
	Lanes       []LaneRow `json:"lanes"`
	TotalTrees  int       `json:"total_trees"`
	TotalVolume float64   `json:"total_volume_m3"`
}

type key struct {
	species, class string
}

// Aggregate groups trees by (species, class) and by lane. Rows are sorted
// by species then class, lanes ascending. Trees without a lane are left out
// of the lane table.
func Aggregate(trees []inventory.Tree) *Summary {
	groups := make(map[key][]float64)
	lanes := make(map[int][]float64)
	all := make([]float64, 0, len(trees))
	for _, t := range trees {
		k := key{t.Species, t.Class}
		groups[k] = append(groups[k], t.VolumeM3)
		if t.Lane > 0 {
			lanes[t.Lane] = append(lanes[t.Lane], t.VolumeM3)
		}
		all = append(all, t.VolumeM3)
	}

	s := &Summary{
		Rows:        make([]Row, 0, len(groups)),
		Lanes:       make([]LaneRow, 0, len(lanes)),
		TotalTrees:  len(trees),
		TotalVolume: volume.Round2(floats.Sum(all)),
	}
	for k, vols := range groups {
		s.Rows = append(s.Rows, Row{
			Species:  k.species,
			Class:    k.class,
			Count:    len(vols),
			VolumeM3: volume.Round2(floats.Sum(vols)),
		})
	}
	sort.Slice(s.Rows, func(i, j int) bool {
		if s.Rows[i].Species == s.Rows[j].Species {
			return s.Rows[i].Class < s.Rows[j].Class
		}
		return s.Rows[i].Species < s.Rows[j].Species
	})

	for lane, vols := range lanes {
		s.Lanes = append(s.Lanes, LaneRow{
			Lane:     lane,
			Count:    len(vols),
			VolumeM3: volume.Round2(floats.Sum(vols)),
		})
	}
	sort.Slice(s.Lanes, func(i, j int) bool { return s.Lanes[i].Lane < s.Lanes[j].Lane })
	return s
}

// Row returns the recap for a (species, class) pair.
func (s *Summary) Row(species, class string) (Row, bool) {
	for _, r := range s.Rows {
		if r.Species == species && r.Class == class {
			return r, true
		}
	}
	return Row{}, false
}

// ByClass totals the rows per class, in row order of first appearance.
func (s *Summary) ByClass() []Row {
	idx := make(map[string]int)
	var out []Row
	for _, r := range s.Rows {
		i, ok := idx[r.Class]
		if !ok {
			idx[r.Class] = len(out)
			out = append(out, Row{Class: r.Class})
			i = len(out) - 1
		}
		out[i].Count += r.Count
		out[i].VolumeM3 = volume.Round2(out[i].VolumeM3 + r.VolumeM3)
	}
	return out
}
