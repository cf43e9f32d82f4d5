package gompc

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteSeriesCSV saves equal-length columns to a CSV file with a header
// row, so plotted series can be inspected next to the images.
func WriteSeriesCSV(path string, header []string, cols ...[]float64) error {
	if len(cols) == 0 {
		return fmt.Errorf("csv: no columns")
	}
	if len(header) != len(cols) {
		return fmt.Errorf("csv: %d header fields for %d columns", len(header), len(cols))
	}
	n := len(cols[0])
	for _, c := range cols {
		if len(c) != n {
			return fmt.Errorf("csv: column size mismatch")
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("csv: cannot create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: cannot open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return fmt.Errorf("csv: cannot write header: %w", err)
	}
	for r := 0; r < n; r++ {
		row := make([]string, len(cols))
		for c := range cols {
			row[c] = fmt.Sprintf("%.15g", cols[c][r])
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: cannot write row: %w", err)
		}
	}
	return nil
}
