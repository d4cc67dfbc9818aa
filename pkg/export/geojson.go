package export

import (
	"fmt"
	"io"

	"github.com/paulmach/orb/geojson"

	"github.com/Rnyoms/LHC-NYOM/pkg/pipeline"
)

// FeatureCollection converts the trees to point features carrying the
// tree attributes as properties.
func FeatureCollection(res *pipeline.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, t := range res.Trees {
		f := geojson.NewFeature(t.Position())
		f.Properties["kelas"] = t.Class
		f.Properties["jenis"] = t.Species
		f.Properties["diameter_cm"] = t.DiameterCM
		f.Properties["tinggi_m"] = t.HeightM
		f.Properties["volume_m3"] = t.VolumeM3
		f.Properties["jalur"] = t.Lane
		fc.Append(f)
	}
	return fc
}

// WriteGeoJSON writes the trees as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, res *pipeline.Result) error {
	data, err := FeatureCollection(res).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding geojson: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Write dispatches to the writer for f.
func Write(w io.Writer, f Format, res *pipeline.Result) error {
	switch f {
	case FormatXLSX:
		return WriteWorkbook(w, res)
	case FormatCSV:
		return WriteCSV(w, res)
	case FormatGeoJSON:
		return WriteGeoJSON(w, res)
	}
	return fmt.Errorf("unknown output format %q", f)
}

// Save writes res in format f to dir/<plot>.<ext> and returns the path.
func Save(dir string, f Format, res *pipeline.Result) (string, error) {
	out, path, err := createFile(dir, FileName(res.Plot, f))
	if err != nil {
		return "", err
	}
	if err := Write(out, f, res); err != nil {
		out.Close()
		return "", err
	}
	return path, out.Close()
}
