package render

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/cwbudde/spectral/dsp/spectrum"
)

// SpectrumCSV writes the spectrum bins to path as two-column CSV with a
// frequency_hz,magnitude header. Values round-trip through ParseFloat.
func SpectrumCSV(path string, sp spectrum.Spectrum) error {
	if sp.Len() == 0 {
		return fmt.Errorf("%w: empty spectrum", ErrNoData)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	record := []string{"frequency_hz", "magnitude"}
	if err := w.Write(record); err != nil {
		f.Close()
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	for i := range sp.Frequencies {
		record[0] = strconv.FormatFloat(sp.Frequencies[i], 'g', -1, 64)
		record[1] = strconv.FormatFloat(sp.Magnitudes[i], 'g', -1, 64)
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("render: write %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("render: close %s: %w", path, err)
	}
	return nil
}
