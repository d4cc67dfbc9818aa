package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Rnyoms/LHC-NYOM/pkg/pipeline"
)

// Sheet names of the workbook.
const (
	SheetTrees = "DataPohon"
	SheetRecap = "Rekap"
)

// WriteWorkbook writes the tree table and the species/class recap as an
// xlsx workbook.
func WriteWorkbook(w io.Writer, res *pipeline.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetTrees); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := setRow(f, SheetTrees, 1, toAny(TreeColumns)); err != nil {
		return err
	}
	for i, t := range res.Trees {
		row := []any{t.Class, t.Species, t.DiameterCM, t.HeightM, t.VolumeM3, t.Latitude, t.Longitude, t.Lane}
		if err := setRow(f, SheetTrees, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetRecap); err != nil {
		return fmt.Errorf("adding sheet: %w", err)
	}
	if err := setRow(f, SheetRecap, 1, toAny(RecapColumns)); err != nil {
		return err
	}
	for i, r := range res.Summary.Rows {
		if err := setRow(f, SheetRecap, i+2, []any{r.Species, r.Class, r.Count, r.VolumeM3}); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetTrees, "A", "H", 14); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetColWidth(SheetRecap, "A", "B", 18); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveWorkbook writes the workbook to dir/<plot>.xlsx and returns its path.
func SaveWorkbook(dir string, res *pipeline.Result) (string, error) {
	out, path, err := createFile(dir, FileName(res.Plot, FormatXLSX))
	if err != nil {
		return "", err
	}
	if err := WriteWorkbook(out, res); err != nil {
		out.Close()
		return "", err
	}
	return path, out.Close()
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
