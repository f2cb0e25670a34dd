package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"lab-pricing/internal/catalog"
)

func main() {
	var (
		sheetID       = flag.String("sheet-id", "", "Google Sheet ID (default: SHEET_ID env var)")
		labs          = flag.String("labs", "OPIC_LAB,CHEVRON_LAB", "Comma-separated lab tab names")
		dbPath        = flag.String("db", "./catalog.db", "Path to the sqlite catalog database")
		migrationsDir = flag.String("migrations", "db/migrations", "Path to goose migrations")
		fromFile      = flag.String("from-file", "", "Import from a local catalog CSV instead of the sheet")
	)
	flag.Parse()

	if *sheetID == "" {
		*sheetID = os.Getenv("SHEET_ID")
	}
	if *sheetID == "" && *fromFile == "" {
		log.Fatal("either --sheet-id (or SHEET_ID) or --from-file is required")
	}

	store, err := catalog.OpenStore(*dbPath)
	if err != nil {
		log.Fatalf("open catalog store: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(*migrationsDir); err != nil {
		log.Fatalf("migrate catalog store: %v", err)
	}

	var tests []catalog.Test
	if *fromFile != "" {
		fc, err := catalog.OpenFileCatalog(*fromFile, "")
		if err != nil {
			log.Fatalf("open catalog file: %v", err)
		}
		tests, err = fc.ListTests("")
		if err != nil {
			log.Fatalf("read catalog file: %v", err)
		}
		fmt.Printf("Loaded %d tests from %s\n", len(tests), *fromFile)
	} else {
		client := catalog.NewSheetClient(*sheetID, "", splitLabs(*labs))
		for _, lab := range splitLabs(*labs) {
			labTests, err := client.FetchLab(lab)
			if err != nil {
				log.Fatalf("fetch lab %s: %v", lab, err)
			}
			fmt.Printf("Fetched %d tests from %s\n", len(labTests), lab)
			tests = append(tests, labTests...)
		}
	}

	stats, err := store.UpsertTests(tests)
	if err != nil {
		log.Fatalf("import tests: %v", err)
	}

	fmt.Printf("Catalog updated: %d inserted, %d updated (%s)\n", stats.Inserts, stats.Updates, *dbPath)
}

func splitLabs(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
