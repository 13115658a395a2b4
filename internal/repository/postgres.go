package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/plaza/internal/models"
)

const schemaQuery = `
	CREATE TABLE IF NOT EXISTS studies (
		study_id      UUID PRIMARY KEY,
		digest        TEXT NOT NULL,
		file_name     TEXT NOT NULL,
		sheet         TEXT NOT NULL,
		unit_rows     INTEGER NOT NULL,
		dropped_rows  INTEGER NOT NULL,
		developments  INTEGER NOT NULL,
		uploaded_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

// EnsureSchema creates the studies table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaQuery); err != nil {
		return fmt.Errorf("failed to create studies table: %w", err)
	}

	return nil
}

// RecordStudy stores a history entry for an upload.
func (r *Repository) RecordStudy(ctx context.Context, record models.StudyRecord) error {
	query := `
		INSERT INTO studies
			(study_id, digest, file_name, sheet, unit_rows, dropped_rows, developments, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.db.Exec(ctx, query,
		record.ID, record.Digest, record.FileName, record.Sheet,
		record.UnitRows, record.DroppedRows, record.Developments, record.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert study record: %w", err)
	}

	r.log.DebugContext(ctx, "Study recorded", "id", record.ID, "file", record.FileName)
	return nil
}

// RecentStudies returns the latest uploads, newest first.
func (r *Repository) RecentStudies(ctx context.Context, limit int) ([]models.StudyRecord, error) {
	query := `
		SELECT study_id, digest, file_name, sheet, unit_rows, dropped_rows, developments, uploaded_at
		FROM studies
		ORDER BY uploaded_at DESC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query studies: %w", err)
	}
	defer rows.Close()

	records := []models.StudyRecord{}
	for rows.Next() {
		var rec models.StudyRecord
		if errScan := rows.Scan(
			&rec.ID, &rec.Digest, &rec.FileName, &rec.Sheet,
			&rec.UnitRows, &rec.DroppedRows, &rec.Developments, &rec.UploadedAt,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan study record: %w", errScan)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return records, nil
}
