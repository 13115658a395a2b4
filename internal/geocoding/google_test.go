package geocoding_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/plaza/internal/geocoding"
	"github.com/UnknownOlympus/plaza/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func TestGoogleSearch(t *testing.T) {
	mockClient := mocks.NewGooglePlacesClient(t)
	provider := geocoding.NewGoogleProvider(mockClient, "es", slog.Default())
	ctx := t.Context()

	t.Run("api returns error", func(t *testing.T) {
		req := &maps.TextSearchRequest{Query: "Sagrada Familia", Language: "es"}

		mockClient.On("TextSearch", ctx, req).Return(maps.PlacesSearchResponse{}, assert.AnError).Once()

		places, err := provider.Search(ctx, "Sagrada Familia")

		require.Nil(t, places)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to search places")
	})

	t.Run("api returns no results", func(t *testing.T) {
		req := &maps.TextSearchRequest{Query: "nowhere at all", Language: "es"}

		mockClient.On("TextSearch", ctx, req).Return(maps.PlacesSearchResponse{}, nil).Once()

		places, err := provider.Search(ctx, "  nowhere at all ")

		require.Nil(t, places)
		require.ErrorIs(t, err, geocoding.ErrEmptyResponse)
	})

	t.Run("blank query is rejected before calling the api", func(t *testing.T) {
		places, err := provider.Search(ctx, "   ")

		require.Nil(t, places)
		require.ErrorIs(t, err, geocoding.ErrEmptyQuery)
	})

	t.Run("successful search", func(t *testing.T) {
		req := &maps.TextSearchRequest{Query: "Sagrada Familia", Language: "es"}
		resp := maps.PlacesSearchResponse{Results: []maps.PlacesSearchResult{
			{
				Name:             "Basílica de la Sagrada Família",
				FormattedAddress: "C/ de Mallorca, 401, Barcelona",
				Geometry:         maps.AddressGeometry{Location: maps.LatLng{Lat: 41.4036, Lng: 2.1744}},
			},
		}}

		mockClient.On("TextSearch", ctx, req).Return(resp, nil).Once()

		places, err := provider.Search(ctx, "Sagrada Familia")

		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "Basílica de la Sagrada Família", places[0].Name)
		assert.Equal(t, "C/ de Mallorca, 401, Barcelona", places[0].Address)
		assert.InEpsilon(t, 41.4036, places[0].Coordinates.Latitude, 0.0001)
		assert.InEpsilon(t, 2.1744, places[0].Coordinates.Longitude, 0.0001)
	})
}
