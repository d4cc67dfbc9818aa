// Package export writes simulation results as an Excel workbook, CSV,
// GeoJSON and a PNG map.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Rnyoms/LHC-NYOM/pkg/inventory"
)

// Tree table column headers, in output order.
var TreeColumns = []string{
	"Kelas", "Jenis", "Diameter_cm", "Tinggi_m", "Volume_m3", "Latitude", "Longitude", "Jalur",
}

// Recap table column headers, in output order.
var RecapColumns = []string{"Jenis", "Kelas", "Jumlah", "Volume"}

// Format is an output file type.
type Format string

const (
	FormatXLSX    Format = "xlsx"
	FormatCSV     Format = "csv"
	FormatGeoJSON Format = "geojson"
)

// ParseFormat accepts a format name, case-sensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatXLSX, FormatCSV, FormatGeoJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want xlsx, csv or geojson)", s)
}

// FileName returns "<plot>.<ext>" with path separators in the plot name
// replaced so the file stays in its directory.
func FileName(plot string, f Format) string {
	name := plot
	if name == "" {
		name = "petak"
	}
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." {
		name = "petak"
	}
	return name + "." + string(f)
}

func treeRecord(t inventory.Tree) []string {
	return []string{
		t.Class,
		t.Species,
		strconv.Itoa(t.DiameterCM),
		strconv.Itoa(t.HeightM),
		strconv.FormatFloat(t.VolumeM3, 'f', 2, 64),
		strconv.FormatFloat(t.Latitude, 'f', -1, 64),
		strconv.FormatFloat(t.Longitude, 'f', -1, 64),
		strconv.Itoa(t.Lane),
	}
}

func createFile(dir, name string) (*os.File, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("creating %s: %w", path, err)
	}
	return f, path, nil
}
