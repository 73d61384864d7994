package sqlite

import (
	"database/sql"
	"encoding/json"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"nippo/internal/domain"
)

// The gateway is a plain key-value table: one row per logical collection,
// each holding the whole collection as a JSON blob. Every save is a
// read-modify-rewrite of the full collection.
const (
	CollectionReports  = "reports"
	CollectionStaffs   = "staffs"
	CollectionSettings = "settings"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		name       TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, err
	}
	return db, nil
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the raw JSON blob for a collection, or nil when the
// collection has never been written.
func (s *Store) Get(name string) ([]byte, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM collections WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

func (s *Store) Set(name string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO collections (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		name, string(data),
	)
	return err
}

// LoadReports returns the stored reports, newest first. Missing or
// malformed data degrades to an empty list.
func (s *Store) LoadReports() []domain.Report {
	var reports []domain.Report
	s.load(CollectionReports, &reports)
	return reports
}

func (s *Store) SaveReports(reports []domain.Report) error {
	return s.save(CollectionReports, reports)
}

func (s *Store) LoadStaffs() []domain.Staff {
	var staffs []domain.Staff
	s.load(CollectionStaffs, &staffs)
	return staffs
}

func (s *Store) SaveStaffs(staffs []domain.Staff) error {
	return s.save(CollectionStaffs, staffs)
}

// LoadSettings always yields a usable record: unset fields fall back to
// the hardcoded defaults.
func (s *Store) LoadSettings() domain.Settings {
	var settings domain.Settings
	s.load(CollectionSettings, &settings)
	return settings.WithDefaults()
}

func (s *Store) SaveSettings(settings domain.Settings) error {
	return s.save(CollectionSettings, settings)
}

func (s *Store) load(name string, out interface{}) {
	data, err := s.Get(name)
	if err != nil {
		log.Printf("storage: read %s: %v", name, err)
		return
	}
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("storage: malformed %s collection, using empty: %v", name, err)
	}
}

func (s *Store) save(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(name, data)
}
