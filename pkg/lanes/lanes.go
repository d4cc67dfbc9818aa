// Package lanes numbers survey lanes ("jalur"): fixed-width north-south
// corridors counted from 1 at the west edge of the plot in a planar
// projection.
package lanes

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/Rnyoms/LHC-NYOM/pkg/geo"
	"github.com/Rnyoms/LHC-NYOM/pkg/inventory"
)

// Width is the lane width in meters.
const Width = 20.0

// Index describes how lanes were assigned in one run.
type Index struct {
	Projection       string  `json:"projection"`
	MinX             float64 `json:"min_x"`
	BoundaryFallback bool    `json:"boundary_fallback"`
	Lanes            int     `json:"lanes"`
}

// Lane returns the 1-based lane of planar x relative to minX. Points west
// of minX, which only arise from projection round-off, fall in lane 1.
func Lane(x, minX float64) int {
	return max(int(math.Floor((x-minX)/Width))+1, 1)
}

// Assign projects trees and boundary with p, sets each tree's Lane from its
// planar x and rewrites its position from the back-projected point. minX is
// taken from the projected boundary; if the boundary cannot be projected it
// is taken from the projected trees instead. A tree that cannot be projected
// aborts the assignment and leaves trees unchanged.
func Assign(trees []inventory.Tree, b *geo.Boundary, p geo.Projector) (Index, error) {
	idx := Index{Projection: fmt.Sprint(p)}

	planar := make([]orb.Point, len(trees))
	for i, t := range trees {
		xy, err := p.Project(t.Position())
		if err != nil {
			return idx, fmt.Errorf("projecting tree %d: %w", i, err)
		}
		planar[i] = xy
	}

	minX, err := boundaryMinX(b, p)
	if err != nil {
		idx.BoundaryFallback = true
		minX = math.Inf(1)
		for _, xy := range planar {
			minX = math.Min(minX, xy.X())
		}
	}
	idx.MinX = minX

	lanes := make([]int, len(trees))
	back := make([]orb.Point, len(trees))
	for i, xy := range planar {
		lanes[i] = Lane(xy.X(), minX)
		ll, err := p.Unproject(xy)
		if err != nil {
			return idx, fmt.Errorf("unprojecting tree %d: %w", i, err)
		}
		back[i] = ll
	}

	for i := range trees {
		trees[i].Lane = lanes[i]
		trees[i].SetPosition(back[i])
		idx.Lanes = max(idx.Lanes, lanes[i])
	}
	return idx, nil
}

func boundaryMinX(b *geo.Boundary, p geo.Projector) (float64, error) {
	if b == nil {
		return 0, geo.ErrEmptyBoundary
	}
	pts := b.Points()
	if len(pts) == 0 {
		return 0, geo.ErrEmptyBoundary
	}
	minX := math.Inf(1)
	for _, pt := range pts {
		xy, err := p.Project(pt)
		if err != nil {
			return 0, err
		}
		minX = math.Min(minX, xy.X())
	}
	return minX, nil
}
