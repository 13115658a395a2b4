package geocoding

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of place search provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents the Google Places text search API.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeNominatim represents the OpenStreetMap Nominatim search API.
	ProviderTypeNominatim ProviderType = "nominatim"
	// ProviderTypeNone disables place search.
	ProviderTypeNone ProviderType = "none"
)

// ErrPlacesDisabled is returned by NewProvider when place search is turned off.
var ErrPlacesDisabled = errors.New("place search is disabled")

// ProviderConfig holds configuration for creating a place search provider.
type ProviderConfig struct {
	Type      ProviderType // Type of provider to create
	APIKey    string       // API key (required by Google)
	RateLimit int          // Requests per second (Google only; Nominatim is fixed at 1/s)
	Language  string       // Preferred result language, e.g. "es"
	Logger    *slog.Logger // Logger for the provider
}

// NewProvider creates a place search provider based on the provided configuration.
//
// Supported provider types:
// - "google": Google Places text search (requires API key)
// - "nominatim": OpenStreetMap Nominatim API (free, no API key required)
// - "none" or empty: returns ErrPlacesDisabled
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeNominatim:
		return NewNominatimProvider(config.Language, config.Logger), nil
	case ProviderTypeNone, "":
		return nil, ErrPlacesDisabled
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newGoogleProvider creates a Google Places provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}
	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Language, config.Logger), nil
}
