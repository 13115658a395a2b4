package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/plaza/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider searches places with the Google Places text search API.
type GoogleProvider struct {
	client   GooglePlacesClient // client is the Google Maps API client
	language string             // language requested for names and addresses
	log      *slog.Logger
}

// GooglePlacesClient is the subset of *maps.Client used by GoogleProvider.
type GooglePlacesClient interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
}

// ErrEmptyResponse is returned when a provider finds no place for the query.
var ErrEmptyResponse = errors.New("no places found")

// ErrEmptyQuery is returned when the search text is blank.
var ErrEmptyQuery = errors.New("search query is empty")

// NewGoogleProvider wraps a Google Maps client.
func NewGoogleProvider(client GooglePlacesClient, language string, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, language: language, log: log}
}

// Search runs a text search and converts every result to a place.
func (gp *GoogleProvider) Search(ctx context.Context, query string) ([]models.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	gp.log.DebugContext(ctx, "Searching places using Google", "query", query)

	req := maps.TextSearchRequest{Query: query, Language: gp.language}
	resp, err := gp.client.TextSearch(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}

	if len(resp.Results) == 0 {
		return nil, ErrEmptyResponse
	}

	places := make([]models.Place, 0, len(resp.Results))
	for _, result := range resp.Results {
		places = append(places, models.Place{
			Name:    result.Name,
			Address: result.FormattedAddress,
			Coordinates: models.Coordinates{
				Latitude:  result.Geometry.Location.Lat,
				Longitude: result.Geometry.Location.Lng,
			},
		})
	}

	return places, nil
}
