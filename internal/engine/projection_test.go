package engine

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestProjectSeries(t *testing.T) {
	series, err := Default().ProjectSeries(3000, baseEconomics(), baseInputs(), 100)
	if err != nil {
		t.Fatalf("ProjectSeries: %v", err)
	}
	if len(series) != 100 {
		t.Fatalf("series length = %d, want 100", len(series))
	}
	if series[0].Volume != 1 || series[99].Volume != 100 {
		t.Fatalf("series volumes run %d..%d, want 1..100", series[0].Volume, series[99].Volume)
	}

	// Points carry the unrounded figures.
	wantOpex := 2000 * (1 + 0.1*math.Log1p(2))
	last := series[99]
	nearlyEqual(t, "revenue at 100", last.TotalRevenue, 300000)
	nearlyEqual(t, "ebitda at 100", last.TotalEBITDA, 100000-wantOpex)

	for i := 1; i < len(series); i++ {
		if series[i].TotalEBITDA <= series[i-1].TotalEBITDA {
			t.Fatalf("ebitda not increasing at volume %d", series[i].Volume)
		}
	}
}

func TestProjectSeries_Validation(t *testing.T) {
	if _, err := Default().ProjectSeries(3000, baseEconomics(), baseInputs(), 0); err == nil {
		t.Fatal("expected an error for max volume 0")
	}
	bad := baseEconomics()
	bad.UnitCost = -1
	if _, err := Default().ProjectSeries(3000, bad, baseInputs(), 10); err == nil {
		t.Fatal("expected an error for invalid economics")
	}
}

func TestWriteSeriesCSV(t *testing.T) {
	series := []SeriesPoint{
		{Volume: 1, TotalRevenue: 3000, TotalEBITDA: -1004.01},
		{Volume: 2, TotalRevenue: 6000, TotalEBITDA: -7.84},
	}
	path := filepath.Join(t.TempDir(), "series.csv")
	if err := WriteSeriesCSV(path, series); err != nil {
		t.Fatalf("WriteSeriesCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "volume" || rows[0][2] != "total_ebitda" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "3000.00" || rows[2][2] != "-7.84" {
		t.Fatalf("unexpected formatting: %v / %v", rows[1], rows[2])
	}
}
