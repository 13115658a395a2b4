package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/plaza/internal/columns"
	"github.com/UnknownOlympus/plaza/internal/coords"
	"github.com/UnknownOlympus/plaza/internal/dataset"
	"github.com/UnknownOlympus/plaza/internal/metrics"
	"github.com/UnknownOlympus/plaza/internal/models"
	"github.com/UnknownOlympus/plaza/internal/repository"
	"github.com/UnknownOlympus/plaza/internal/sheet"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Errors returned while loading a study. All of them mean the upload produced no data.
var (
	ErrUnreadableStudy    = errors.New("the workbook could not be read")
	ErrNoCoordinateColumn = errors.New("no coordinate column (COORD) found")
	ErrNoReferenceColumn  = errors.New("no reference column (REF, PROMOCION, NOMBRE) found")
	ErrStudyNotFound      = errors.New("study not found, upload the file again")
)

// StudyService loads market-study uploads and computes the views shown on the dashboard.
type StudyService struct {
	log      *slog.Logger         // Logger for service activities
	repo     repository.Interface // Study history storage
	resolver *columns.Resolver    // Header heuristics
	metrics  *metrics.Metrics     // Metrics for tracking service activity
	cache    *lru.Cache[string, *models.Study]
	sheet    string            // Preferred sheet name
	stat     dataset.Statistic // Unit price statistic
	now      func() time.Time
}

// NewStudyService creates a StudyService keeping up to cacheSize parsed studies in memory.
func NewStudyService(
	log *slog.Logger,
	repo repository.Interface,
	resolver *columns.Resolver,
	metrics *metrics.Metrics,
	cacheSize int,
	sheetName string,
	stat dataset.Statistic,
) (*StudyService, error) {
	cache, err := lru.New[string, *models.Study](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create study cache: %w", err)
	}

	return &StudyService{
		log:      log,
		repo:     repo,
		resolver: resolver,
		metrics:  metrics,
		cache:    cache,
		sheet:    sheetName,
		stat:     stat,
		now:      time.Now,
	}, nil
}

// Load parses an uploaded workbook, or returns the memoized study when the same bytes were
// uploaded before. The study ID is the hex SHA-256 digest of the file content.
func (s *StudyService) Load(ctx context.Context, fileName string, data []byte) (*models.Study, error) {
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	if study, ok := s.cache.Get(digest); ok {
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		s.log.DebugContext(ctx, "Study served from cache", "id", digest, "file", fileName)
		return study, nil
	}
	s.metrics.CacheLookups.WithLabelValues("miss").Inc()

	study, err := s.parse(digest, fileName, data)
	if err != nil {
		s.metrics.StudiesLoaded.WithLabelValues("failure").Inc()
		s.log.WarnContext(ctx, "Failed to load study", "file", fileName, "error", err)
		return nil, err
	}

	s.cache.Add(digest, study)
	s.metrics.CachedStudies.Set(float64(s.cache.Len()))
	s.metrics.StudiesLoaded.WithLabelValues("success").Inc()
	s.metrics.RowsDropped.Add(float64(study.Dropped))

	s.log.InfoContext(ctx, "Study loaded",
		"id", digest,
		"file", fileName,
		"sheet", study.Sheet,
		"units", len(study.Units),
		"dropped", study.Dropped,
	)

	record := models.StudyRecord{
		ID:           uuid.NewString(),
		Digest:       digest,
		FileName:     fileName,
		Sheet:        study.Sheet,
		UnitRows:     len(study.Units),
		DroppedRows:  study.Dropped,
		Developments: countReferences(study.Units),
		UploadedAt:   s.now().UTC(),
	}
	if err = s.repo.RecordStudy(ctx, record); err != nil {
		s.log.ErrorContext(ctx, "Could not record study history", "id", digest, "error", err)
	}

	return study, nil
}

// Get returns a study loaded earlier.
func (s *StudyService) Get(id string) (*models.Study, error) {
	study, ok := s.cache.Get(id)
	if !ok {
		s.metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, ErrStudyNotFound
	}
	s.metrics.CacheLookups.WithLabelValues("hit").Inc()
	return study, nil
}

// History returns the most recent uploads.
func (s *StudyService) History(ctx context.Context, limit int) ([]models.StudyRecord, error) {
	records, err := s.repo.RecentStudies(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load study history: %w", err)
	}
	return records, nil
}

func (s *StudyService) parse(digest, fileName string, data []byte) (*models.Study, error) {
	table, err := sheet.Read(bytes.NewReader(data), s.sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableStudy, err)
	}

	resolved := s.resolver.Resolve(table.Headers)
	if _, ok := resolved[models.FieldCoordinates]; !ok {
		return nil, ErrNoCoordinateColumn
	}
	if _, ok := resolved[models.FieldReference]; !ok {
		return nil, ErrNoReferenceColumn
	}

	index := make(map[models.Field]int, len(resolved))
	for field, header := range resolved {
		index[field] = table.Column(header)
	}
	separateName := resolved[models.FieldName] != resolved[models.FieldReference]

	study := &models.Study{
		ID:       digest,
		FileName: fileName,
		Sheet:    table.Sheet,
		Columns:  resolved,
		Units:    make([]models.Unit, 0, len(table.Rows)),
	}

	for _, row := range table.Rows {
		point, ok := coords.Parse(row[index[models.FieldCoordinates]])
		ref := strings.TrimSpace(row[index[models.FieldReference]])
		if !ok || ref == "" {
			study.Dropped++
			continue
		}

		unit := models.Unit{
			Reference:   ref,
			Coordinates: point,
			Values:      make(map[models.Field]string, len(index)),
		}
		for field, col := range index {
			if field == models.FieldCoordinates {
				continue
			}
			unit.Values[field] = strings.TrimSpace(row[col])
		}
		if separateName {
			unit.Name = unit.Values[models.FieldName]
		}
		study.Units = append(study.Units, unit)
	}

	return study, nil
}

func countReferences(units []models.Unit) int {
	refs := make(map[string]struct{})
	for _, unit := range units {
		refs[unit.Reference] = struct{}{}
	}
	return len(refs)
}
