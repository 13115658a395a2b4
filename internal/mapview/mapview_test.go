package mapview_test

import (
	"fmt"
	"testing"

	"github.com/UnknownOlympus/plaza/internal/mapview"
	"github.com/UnknownOlympus/plaza/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func devs(n int) []models.Development {
	out := make([]models.Development, n)
	for i := range out {
		out[i] = models.Development{Reference: fmt.Sprintf("R%d", i)}
	}
	return out
}

func TestNewTileLayer(t *testing.T) {
	sat := mapview.NewTileLayer(mapview.LayerSatellite, mapview.StyleStandard)
	assert.Contains(t, sat.URL, "lyrs=y&")
	assert.Contains(t, sat.URL, "{x}")
	assert.Empty(t, sat.CSSFilter)

	street := mapview.NewTileLayer(mapview.LayerStreet, mapview.StyleDark)
	assert.Contains(t, street.URL, "lyrs=m&")
	assert.Contains(t, street.CSSFilter, "invert(100%)")

	darkSat := mapview.NewTileLayer(mapview.LayerSatellite, mapview.StyleDark)
	assert.Contains(t, darkSat.CSSFilter, "brightness(45%)")

	gray := mapview.NewTileLayer("unknown", mapview.StyleGrayscale)
	assert.Contains(t, gray.URL, "lyrs=y&")
	assert.Equal(t, "grayscale(100%) contrast(110%)", gray.CSSFilter)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "3,250 €/m²", mapview.PriceLabel(ptr(3249.6)))
	assert.Equal(t, "- €/m²", mapview.PriceLabel(nil))
	assert.Equal(t, "1,250,000€", mapview.AmountLabel(ptr(1250000)))
	assert.Equal(t, "-", mapview.AmountLabel(nil))
}

func TestMarkerHTML(t *testing.T) {
	dev := models.Development{Reference: "A<1>", UnitPrice: ptr(2800)}

	withPrice, err := mapview.MarkerHTML(dev, true)
	require.NoError(t, err)
	assert.Contains(t, withPrice, "A&lt;1&gt;")
	assert.Contains(t, withPrice, "2,800 €/m²")

	plain, err := mapview.MarkerHTML(dev, false)
	require.NoError(t, err)
	assert.NotContains(t, plain, "€/m²")
}

func TestSplitCards(t *testing.T) {
	small := mapview.SplitCards(devs(10))
	assert.Len(t, small.Left, 10)
	assert.Empty(t, small.Right)

	odd := mapview.SplitCards(devs(11))
	assert.Len(t, odd.Left, 6)
	assert.Len(t, odd.Right, 5)
	assert.Equal(t, "R6", odd.Right[0].Reference)

	even := mapview.SplitCards(devs(14))
	assert.Len(t, even.Left, 7)
	assert.Len(t, even.Right, 7)
}

func TestFitBounds(t *testing.T) {
	_, ok := mapview.FitBounds(nil)
	assert.False(t, ok)

	bounds, ok := mapview.FitBounds([]models.Development{
		{Coordinates: models.Coordinates{Latitude: 41.5, Longitude: 2.1}},
		{Coordinates: models.Coordinates{Latitude: 40.4, Longitude: -3.7}},
		{Coordinates: models.Coordinates{Latitude: 43.3, Longitude: -2.9}},
	})
	require.True(t, ok)
	assert.Equal(t, models.Coordinates{Latitude: 40.4, Longitude: -3.7}, bounds.SouthWest)
	assert.Equal(t, models.Coordinates{Latitude: 43.3, Longitude: 2.1}, bounds.NorthEast)
}
