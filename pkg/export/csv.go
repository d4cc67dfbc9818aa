package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Rnyoms/LHC-NYOM/pkg/pipeline"
)

// WriteCSV writes the tree table as CSV with a header row.
func WriteCSV(w io.Writer, res *pipeline.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TreeColumns); err != nil {
		return err
	}
	for _, t := range res.Trees {
		if err := cw.Write(treeRecord(t)); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// WriteRecapCSV writes the species/class recap as CSV.
func WriteRecapCSV(w io.Writer, res *pipeline.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RecapColumns); err != nil {
		return err
	}
	for _, r := range res.Summary.Rows {
		rec := []string{r.Species, r.Class, strconv.Itoa(r.Count), strconv.FormatFloat(r.VolumeM3, 'f', 2, 64)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
