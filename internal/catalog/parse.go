package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lab-pricing/internal/model"
)

// Expected (case-insensitive) column headers in a catalog CSV.
const (
	colTestName     = "TEST NAME"
	colCurrentPrice = "CURRENT PRICE"
	colCOGS         = "COGS"
	colOpexRate     = "OPEX RATE"
	colLab          = "LAB"
)

// ParseNumericOrDefault coerces a spreadsheet cell to a float. Thousands
// separators and currency markers are stripped first; anything that still
// fails to parse falls back to def. This mirrors the permissive parsing of
// the upstream sheet rather than failing a whole catalog on one bad cell.
func ParseNumericOrDefault(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return def
	}
	return v
}

// ParseCatalogCSV reads catalog rows from CSV. Headers are trimmed and
// uppercased before matching. A LAB column is optional; rows without one get
// defaultLab. Price and cost default to 0, the OPEX rate to
// model.DefaultOpexRate; a rate given as a percentage (e.g. 25) is read as
// the fraction 0.25.
func ParseCatalogCSV(r io.Reader, defaultLab string) ([]Test, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	nameIdx, ok := cols[colTestName]
	if !ok {
		return nil, fmt.Errorf("catalog is missing the %q column", colTestName)
	}

	var tests []Test
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}

		name := strings.TrimSpace(field(rec, nameIdx))
		if name == "" {
			continue
		}

		lab := defaultLab
		if i, ok := cols[colLab]; ok {
			if v := strings.TrimSpace(field(rec, i)); v != "" {
				lab = v
			}
		}

		econ := model.TestEconomics{OpexRate: model.DefaultOpexRate}
		if i, ok := cols[colCurrentPrice]; ok {
			econ.CurrentPrice = ParseNumericOrDefault(field(rec, i), 0)
		}
		if i, ok := cols[colCOGS]; ok {
			econ.UnitCost = ParseNumericOrDefault(field(rec, i), 0)
		}
		if i, ok := cols[colOpexRate]; ok {
			rate := ParseNumericOrDefault(field(rec, i), model.DefaultOpexRate)
			// Sheets store the rate either as a fraction or a percentage.
			if rate > 1 && rate <= 100 {
				rate = rate / 100
			}
			econ.OpexRate = rate
		}

		tests = append(tests, Test{Lab: lab, Name: name, Economics: econ})
	}
	return tests, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
