// Package geocoding looks up named places so the dashboard can centre the map on them.
package geocoding

import (
	"context"

	"github.com/UnknownOlympus/plaza/internal/models"
)

// Provider is an interface that defines a method for searching places by free text.
// Search returns the candidate places ordered by relevance, or an error if none were found.
type Provider interface {
	Search(ctx context.Context, query string) ([]models.Place, error)
}
