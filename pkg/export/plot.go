package export

import (
	"fmt"
	"image/color"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Rnyoms/LHC-NYOM/pkg/geo"
	"github.com/Rnyoms/LHC-NYOM/pkg/pipeline"
)

var classColors = []color.RGBA{
	{R: 27, G: 120, B: 55, A: 220},
	{R: 20, G: 80, B: 200, A: 220},
	{R: 230, G: 140, B: 20, A: 220},
	{R: 200, G: 30, B: 30, A: 220},
	{R: 120, G: 40, B: 160, A: 220},
}

// Map draws the boundary outline and the trees, one colour per class, in
// lon/lat.
func Map(res *pipeline.Result, b *geo.Boundary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %d trees", res.Plot, len(res.Trees))
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Add(plotter.NewGrid())

	if b != nil {
		for _, poly := range b.Polygons {
			for _, ring := range poly {
				xys := make(plotter.XYs, 0, len(ring))
				for _, pt := range ring {
					xys = append(xys, plotter.XY{X: pt.X(), Y: pt.Y()})
				}
				line, err := plotter.NewLine(xys)
				if err != nil {
					return nil, err
				}
				line.Width = vg.Points(1.2)
				p.Add(line)
			}
		}
	}

	byClass := make(map[string]plotter.XYs)
	for _, t := range res.Trees {
		byClass[t.Class] = append(byClass[t.Class], plotter.XY{X: t.Longitude, Y: t.Latitude})
	}
	classes := make([]string, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	for i, c := range classes {
		sc, err := plotter.NewScatter(byClass[c])
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = classColors[i%len(classColors)]
		sc.GlyphStyle.Radius = vg.Points(1.8)
		p.Add(sc)
		p.Legend.Add(c, sc)
	}
	return p, nil
}

// WriteMap renders the map as PNG.
func WriteMap(w io.Writer, res *pipeline.Result, b *geo.Boundary) error {
	p, err := Map(res, b)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(8*vg.Inch, 8*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("rendering map: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// SaveMap writes the PNG map to dir/<plot>.png and returns the path.
func SaveMap(dir string, res *pipeline.Result, b *geo.Boundary) (string, error) {
	out, path, err := createFile(dir, FileName(res.Plot, "png"))
	if err != nil {
		return "", err
	}
	if err := WriteMap(out, res, b); err != nil {
		out.Close()
		return "", err
	}
	return path, out.Close()
}
