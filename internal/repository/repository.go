package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/plaza/internal/models"
)

// Repository persists the history of uploaded studies.
type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface is the persistence contract used by the study service.
type Interface interface {
	RecordStudy(ctx context.Context, record models.StudyRecord) error
	RecentStudies(ctx context.Context, limit int) ([]models.StudyRecord, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// Discard is an Interface that keeps nothing. It is used when no database is configured.
type Discard struct{}

// RecordStudy drops the record.
func (Discard) RecordStudy(context.Context, models.StudyRecord) error { return nil }

// RecentStudies always returns an empty history.
func (Discard) RecentStudies(context.Context, int) ([]models.StudyRecord, error) {
	return []models.StudyRecord{}, nil
}
