// Package recordstore loads stored medical records for the clinical
// pipeline. It has a file backend for the legacy single-consultation JSON
// data file and a Postgres backend keyed by patient, selected by env.
// Absence of a record is a normal, silent outcome, never an error.
package recordstore

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"

	"mediscribe/internal/clinical"
)

type Store struct {
	path string
	db   *sql.DB

	loadOnce   sync.Once
	fileRecord clinical.StoredMedicalRecord
	fileErr    error

	schemaOnce sync.Once
	schemaErr  error

	cache *lru.Cache[string, clinical.StoredMedicalRecord]
}

// New creates a file-backed store reading the given JSON data file.
func New(path string) *Store {
	return &Store{path: path}
}

// NewPostgres creates a Postgres-backed store with an LRU read cache.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, clinical.StoredMedicalRecord](1024)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, cache: cache}, nil
}

// NewFromEnv prefers Postgres when RECORD_STORE_PG_DSN is set and falls back
// to the file backend at path.
func NewFromEnv(path string) *Store {
	dsn := strings.TrimSpace(os.Getenv("RECORD_STORE_PG_DSN"))
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		log.Printf("recordstore: postgres unavailable, using file backend: %v", err)
		return New(path)
	}
	return s
}

// Load returns the stored record for patientID. A record that is not on
// file comes back as the zero record with a nil error; only genuine read
// failures (unreadable file, malformed JSON, database errors) error out.
func (s *Store) Load(ctx context.Context, patientID string) (clinical.StoredMedicalRecord, error) {
	if s == nil {
		return clinical.StoredMedicalRecord{}, nil
	}
	if s.db != nil {
		return s.loadDB(ctx, patientID)
	}
	return s.loadFile()
}

// Close releases the database handle if one is open.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
