package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"lab-pricing/internal/model"
)

// FileCatalog is a static catalog loaded from a local CSV file. Useful for
// demos, tests, and running offline against an exported sheet.
type FileCatalog struct {
	tests []Test
}

// OpenFileCatalog reads a catalog CSV from disk. Rows without a LAB column
// are assigned defaultLab.
func OpenFileCatalog(path, defaultLab string) (*FileCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	tests, err := ParseCatalogCSV(f, defaultLab)
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return &FileCatalog{tests: tests}, nil
}

func (fc *FileCatalog) GetTest(lab, name string) (model.TestEconomics, error) {
	for _, t := range fc.tests {
		if labMatches(t.Lab, lab) && strings.EqualFold(t.Name, name) {
			return t.Economics, nil
		}
	}
	return model.TestEconomics{}, fmt.Errorf("%w: %s/%s", ErrTestNotFound, lab, name)
}

func (fc *FileCatalog) ListTests(lab string) ([]Test, error) {
	var out []Test
	for _, t := range fc.tests {
		if labMatches(t.Lab, lab) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (fc *FileCatalog) ListLabs() ([]string, error) {
	seen := map[string]bool{}
	var labs []string
	for _, t := range fc.tests {
		if !seen[t.Lab] {
			seen[t.Lab] = true
			labs = append(labs, t.Lab)
		}
	}
	sort.Strings(labs)
	return labs, nil
}

// labMatches treats an empty requested lab as "any".
func labMatches(rowLab, requested string) bool {
	if requested == "" {
		return true
	}
	return strings.EqualFold(rowLab, requested)
}
