package models

import "time"

// Study is a parsed market-study upload. It is immutable once built and lives only in memory.
type Study struct {
	ID       string           // Hex SHA-256 digest of the uploaded bytes.
	FileName string           // Name of the uploaded file.
	Sheet    string           // Sheet the rows were read from.
	Columns  map[Field]string // Resolved header per logical field.
	Units    []Unit           // Rows with a valid coordinate.
	Dropped  int              // Rows discarded for an unparseable coordinate or a blank reference.
}

// Has reports whether the study resolved a column for the field.
func (s *Study) Has(field Field) bool {
	_, ok := s.Columns[field]
	return ok
}

// StudyRecord is a persisted history entry describing an upload.
type StudyRecord struct {
	ID           string    `json:"id"`
	Digest       string    `json:"digest"`
	FileName     string    `json:"file_name"`
	Sheet        string    `json:"sheet"`
	UnitRows     int       `json:"unit_rows"`
	DroppedRows  int       `json:"dropped_rows"`
	Developments int       `json:"developments"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
