package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"lab-pricing/internal/model"
)

const sqliteDialect = "sqlite3"

// Store is a SQLite-backed test catalog, the durable alternative to hitting
// the sheet on every run. Populate it with cmd/import-catalog.
type Store struct {
	db *sql.DB
}

// OpenStore opens the catalog database, sets recommended pragmas, and
// validates connectivity.
func OpenStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA foreign_keys = ON;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Migrate runs all pending SQL migrations found in migrationsDir.
func (s *Store) Migrate(migrationsDir string) error {
	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(s.db, migrationsDir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}
	return nil
}

// ImportStats contains upsert counters.
type ImportStats struct {
	Inserts int
	Updates int
}

// UpsertTests writes catalog rows in one transaction, keyed by (lab, name).
func (s *Store) UpsertTests(tests []Test) (ImportStats, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return ImportStats{}, fmt.Errorf("begin import transaction: %w", err)
	}

	stats := ImportStats{}
	for _, t := range tests {
		var exists bool
		if err := tx.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM tests WHERE lab = ? AND name = ? LIMIT 1)`,
			t.Lab, t.Name,
		).Scan(&exists); err != nil {
			_ = tx.Rollback()
			return ImportStats{}, fmt.Errorf("check test existence: %w", err)
		}

		if _, err := tx.Exec(`
			INSERT INTO tests (lab, name, current_price, unit_cost, opex_rate)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(lab, name) DO UPDATE SET
				current_price = excluded.current_price,
				unit_cost     = excluded.unit_cost,
				opex_rate     = excluded.opex_rate,
				updated_at    = CURRENT_TIMESTAMP
		`, t.Lab, t.Name, t.Economics.CurrentPrice, t.Economics.UnitCost, t.Economics.OpexRate); err != nil {
			_ = tx.Rollback()
			return ImportStats{}, fmt.Errorf("upsert test %s/%s: %w", t.Lab, t.Name, err)
		}

		if exists {
			stats.Updates++
		} else {
			stats.Inserts++
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportStats{}, fmt.Errorf("commit import transaction: %w", err)
	}
	return stats, nil
}

func (s *Store) GetTest(lab, name string) (model.TestEconomics, error) {
	var econ model.TestEconomics
	err := s.db.QueryRow(`
		SELECT current_price, unit_cost, opex_rate
		FROM tests
		WHERE lab = ? COLLATE NOCASE AND name = ? COLLATE NOCASE
	`, lab, name).Scan(&econ.CurrentPrice, &econ.UnitCost, &econ.OpexRate)
	if err == sql.ErrNoRows {
		return model.TestEconomics{}, fmt.Errorf("%w: %s/%s", ErrTestNotFound, lab, name)
	}
	if err != nil {
		return model.TestEconomics{}, fmt.Errorf("query test: %w", err)
	}
	return econ, nil
}

func (s *Store) ListTests(lab string) ([]Test, error) {
	query := `
		SELECT lab, name, current_price, unit_cost, opex_rate
		FROM tests`
	args := []any{}
	if strings.TrimSpace(lab) != "" {
		query += ` WHERE lab = ? COLLATE NOCASE`
		args = append(args, lab)
	}
	query += ` ORDER BY lab, name`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tests: %w", err)
	}
	defer rows.Close()

	var tests []Test
	for rows.Next() {
		var t Test
		if err := rows.Scan(&t.Lab, &t.Name, &t.Economics.CurrentPrice, &t.Economics.UnitCost, &t.Economics.OpexRate); err != nil {
			return nil, fmt.Errorf("scan test row: %w", err)
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

func (s *Store) ListLabs() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT lab FROM tests ORDER BY lab`)
	if err != nil {
		return nil, fmt.Errorf("query labs: %w", err)
	}
	defer rows.Close()

	var labs []string
	for rows.Next() {
		var lab string
		if err := rows.Scan(&lab); err != nil {
			return nil, fmt.Errorf("scan lab row: %w", err)
		}
		labs = append(labs, lab)
	}
	return labs, rows.Err()
}
