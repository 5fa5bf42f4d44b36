package recordstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"mediscribe/internal/clinical"
)

// The legacy data file holds a single consultation envelope, so the file
// backend serves the same record for every patient.
type fileEnvelope struct {
	Consultation clinical.StoredMedicalRecord `json:"consultation"`
}

func (s *Store) loadFile() (clinical.StoredMedicalRecord, error) {
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.fileErr = err
			}
			return
		}
		var env fileEnvelope
		if err := json.Unmarshal(b, &env); err != nil {
			s.fileErr = err
			return
		}
		s.fileRecord = env.Consultation
	})
	return s.fileRecord, s.fileErr
}
