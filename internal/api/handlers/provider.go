package handlers

import (
	"fmt"
	"os"
	"strings"

	"lab-pricing/internal/api/models"
	"lab-pricing/internal/catalog"
)

// defaultLabs are the tabs the original spreadsheet ships with; overridable
// via CATALOG_LABS.
var defaultLabs = []string{"OPIC_LAB", "CHEVRON_LAB"}

func configuredLabs() []string {
	if v := os.Getenv("CATALOG_LABS"); v != "" {
		parts := strings.Split(v, ",")
		labs := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				labs = append(labs, p)
			}
		}
		if len(labs) > 0 {
			return labs
		}
	}
	return defaultLabs
}

// providerFor builds a catalog provider from a request source, falling back
// to the environment (SHEET_ID, CATALOG_DB, CATALOG_FILE) when fields are
// omitted.
func providerFor(src models.CatalogSource) (catalog.Provider, error) {
	switch src.Type {
	case "sheet", "":
		sheetID := src.SheetID
		if sheetID == "" {
			sheetID = os.Getenv("SHEET_ID")
		}
		if sheetID == "" {
			return nil, fmt.Errorf("sheet_id is required (or set SHEET_ID)")
		}
		return catalog.NewSheetClient(sheetID, "", configuredLabs()), nil
	case "file":
		path := src.Path
		if path == "" {
			path = os.Getenv("CATALOG_FILE")
		}
		if path == "" {
			return nil, fmt.Errorf("path is required for a file catalog (or set CATALOG_FILE)")
		}
		return catalog.OpenFileCatalog(path, src.Lab)
	case "sqlite":
		dbPath := src.DBPath
		if dbPath == "" {
			dbPath = os.Getenv("CATALOG_DB")
		}
		if dbPath == "" {
			return nil, fmt.Errorf("db_path is required for a sqlite catalog (or set CATALOG_DB)")
		}
		return catalog.OpenStore(dbPath)
	default:
		return nil, fmt.Errorf("unsupported catalog source type: %s", src.Type)
	}
}

// closeProvider releases providers that hold resources (the sqlite store).
func closeProvider(p catalog.Provider) {
	if s, ok := p.(*catalog.Store); ok {
		_ = s.Close()
	}
}
