package recordstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"mediscribe/internal/clinical"
)

func (s *Store) ensureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS medical_records (
  patient_id TEXT PRIMARY KEY,
  document JSONB NOT NULL,
  updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
`)
	})
	return s.schemaErr
}

func (s *Store) loadDB(ctx context.Context, patientID string) (clinical.StoredMedicalRecord, error) {
	id := strings.TrimSpace(patientID)
	if id == "" {
		return clinical.StoredMedicalRecord{}, nil
	}
	if s.cache != nil {
		if cached, ok := s.cache.Get(id); ok {
			return cached, nil
		}
	}
	if err := s.ensureSchema(ctx); err != nil {
		return clinical.StoredMedicalRecord{}, err
	}

	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM medical_records WHERE patient_id = $1`, id,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return clinical.StoredMedicalRecord{}, nil
	}
	if err != nil {
		return clinical.StoredMedicalRecord{}, err
	}

	var record clinical.StoredMedicalRecord
	if err := json.Unmarshal(doc, &record); err != nil {
		return clinical.StoredMedicalRecord{}, err
	}
	if s.cache != nil {
		s.cache.Add(id, record)
	}
	return record, nil
}
