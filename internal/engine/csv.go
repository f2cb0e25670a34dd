package engine

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteSeriesCSV writes a volume projection to disk for charting elsewhere.
func WriteSeriesCSV(path string, series []SeriesPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"volume", "total_revenue", "total_ebitda"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range series {
		row := []string{
			strconv.Itoa(p.Volume),
			fmtFloat(p.TotalRevenue),
			fmtFloat(p.TotalEBITDA),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
