package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/plaza/internal/dataset"
	"github.com/UnknownOlympus/plaza/internal/mapview"
	"github.com/UnknownOlympus/plaza/internal/models"
	"github.com/UnknownOlympus/plaza/internal/view"
)

// ErrInvalidAction is returned when a view request carries an action that cannot be applied.
var ErrInvalidAction = errors.New("invalid view action")

// ViewQuery is everything the dashboard sends to recompute a view.
type ViewQuery struct {
	Filters []dataset.Selection `json:"filters"`
	State   view.State          `json:"state"`
	Action  view.Action         `json:"action"`
}

// ViewResult is a computed view of a study.
type ViewResult struct {
	Units   int                  `json:"units"`
	Visible []models.Development `json:"visible"`
	Hidden  []models.Development `json:"hidden"`
	State   view.State           `json:"state"`
	Layout  mapview.Layout       `json:"layout"`
	Bounds  *models.Bounds       `json:"bounds"`
}

// Summary describes a loaded study and the filter options it offers.
type Summary struct {
	ID       string                    `json:"id"`
	FileName string                    `json:"file_name"`
	Sheet    string                    `json:"sheet"`
	Units    int                       `json:"units"`
	Dropped  int                       `json:"dropped"`
	Columns  map[models.Field]string   `json:"columns"`
	Options  map[models.Field][]string `json:"options"`
}

// Summarize returns the summary of a loaded study.
func (s *StudyService) Summarize(study *models.Study) Summary {
	return Summary{
		ID:       study.ID,
		FileName: study.FileName,
		Sheet:    study.Sheet,
		Units:    len(study.Units),
		Dropped:  study.Dropped,
		Columns:  study.Columns,
		Options:  s.Options(study),
	}
}

// Options lists the selectable values of every filter field the study resolved.
func (s *StudyService) Options(study *models.Study) map[models.Field][]string {
	options := make(map[models.Field][]string, len(models.FilterFields))
	for _, field := range models.FilterFields {
		if !study.Has(field) {
			continue
		}
		options[field] = dataset.Options(study.Units, field)
	}
	return options
}

// View filters the study, aggregates the remaining units per development and applies the
// requested action to the view state. Hidden developments are left out of the layout and bounds.
func (s *StudyService) View(ctx context.Context, id string, query ViewQuery) (*ViewResult, error) {
	study, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	units := dataset.Filter(study.Units, study.Columns, query.Filters)
	devs := dataset.Aggregate(units, study.Columns, s.stat)

	state, err := query.State.Apply(query.Action, devs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}

	visible, hidden := state.Partition(devs)
	result := &ViewResult{
		Units:   len(units),
		Visible: visible,
		Hidden:  hidden,
		State:   state,
		Layout:  mapview.SplitCards(visible),
	}
	if bounds, ok := mapview.FitBounds(visible); ok {
		result.Bounds = &bounds
	}

	s.metrics.ViewsComputed.Inc()
	s.log.DebugContext(ctx, "View computed",
		"id", id,
		"units", len(units),
		"visible", len(visible),
		"hidden", len(hidden),
		"action", string(query.Action.Kind),
	)

	return result, nil
}
