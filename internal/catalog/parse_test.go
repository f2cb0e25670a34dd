package catalog

import (
	"strings"
	"testing"

	"lab-pricing/internal/model"
)

func TestParseNumericOrDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  float64
		want float64
	}{
		{"8000", 0, 8000},
		{"8,000", 0, 8000},
		{"₦8,000.50", 0, 8000.50},
		{" 2500 ", 0, 2500},
		{"-150", 0, -150},
		{"", 0.25, 0.25},
		{"N/A", 0.25, 0.25},
		{"0.3", 0, 0.3},
	}
	for _, tc := range cases {
		if got := ParseNumericOrDefault(tc.in, tc.def); got != tc.want {
			t.Errorf("ParseNumericOrDefault(%q, %v) = %v, want %v", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestParseCatalogCSV(t *testing.T) {
	raw := strings.Join([]string{
		"LAB,TEST NAME,CURRENT PRICE,COGS,OPEX RATE",
		"OPIC_LAB,FULL BLOOD COUNT,\"₦8,000\",2000,0.25",
		"CHEVRON_LAB,HBA1C,10000,4800,30",
		",URINALYSIS,2500,1100,",
		",,1,2,3", // no name: skipped
	}, "\n")

	tests, err := ParseCatalogCSV(strings.NewReader(raw), "DEFAULT_LAB")
	if err != nil {
		t.Fatalf("ParseCatalogCSV: %v", err)
	}
	if len(tests) != 3 {
		t.Fatalf("parsed %d rows, want 3", len(tests))
	}

	fbc := tests[0]
	if fbc.Lab != "OPIC_LAB" || fbc.Name != "FULL BLOOD COUNT" {
		t.Fatalf("unexpected first row: %+v", fbc)
	}
	if fbc.Economics.CurrentPrice != 8000 || fbc.Economics.UnitCost != 2000 {
		t.Fatalf("currency cells not coerced: %+v", fbc.Economics)
	}

	// A rate written as a percentage comes back as a fraction.
	if got := tests[1].Economics.OpexRate; got != 0.30 {
		t.Fatalf("percent opex rate = %v, want 0.30", got)
	}

	// Blank lab falls back to the default; blank rate to the default rate.
	urin := tests[2]
	if urin.Lab != "DEFAULT_LAB" {
		t.Fatalf("lab fallback = %q, want DEFAULT_LAB", urin.Lab)
	}
	if urin.Economics.OpexRate != model.DefaultOpexRate {
		t.Fatalf("opex rate fallback = %v, want %v", urin.Economics.OpexRate, model.DefaultOpexRate)
	}
}

func TestParseCatalogCSV_NoOpexColumn(t *testing.T) {
	raw := "TEST NAME,CURRENT PRICE,COGS\nMALARIA PARASITE,3000,900\n"
	tests, err := ParseCatalogCSV(strings.NewReader(raw), "OPIC_LAB")
	if err != nil {
		t.Fatalf("ParseCatalogCSV: %v", err)
	}
	if len(tests) != 1 {
		t.Fatalf("parsed %d rows, want 1", len(tests))
	}
	if tests[0].Economics.OpexRate != model.DefaultOpexRate {
		t.Fatalf("opex rate = %v, want default %v", tests[0].Economics.OpexRate, model.DefaultOpexRate)
	}
	if tests[0].Lab != "OPIC_LAB" {
		t.Fatalf("lab = %q, want OPIC_LAB", tests[0].Lab)
	}
}

func TestParseCatalogCSV_MissingNameColumn(t *testing.T) {
	raw := "PRICE,COGS\n100,50\n"
	if _, err := ParseCatalogCSV(strings.NewReader(raw), ""); err == nil {
		t.Fatal("expected an error without a TEST NAME column")
	}
}

func TestParseCatalogCSV_HeaderCaseInsensitive(t *testing.T) {
	raw := "test name,current price,cogs\nLIPID PROFILE,12000,4500\n"
	tests, err := ParseCatalogCSV(strings.NewReader(raw), "OPIC_LAB")
	if err != nil {
		t.Fatalf("ParseCatalogCSV: %v", err)
	}
	if len(tests) != 1 || tests[0].Economics.CurrentPrice != 12000 {
		t.Fatalf("unexpected parse result: %+v", tests)
	}
}
