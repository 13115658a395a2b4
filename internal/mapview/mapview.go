// Package mapview builds the pieces the dashboard needs to draw developments on a tile map.
package mapview

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/UnknownOlympus/plaza/internal/models"
	"github.com/dustin/go-humanize"
)

// Layer selects the base imagery.
type Layer string

// Style selects a CSS filter applied over the tiles.
type Style string

const (
	LayerSatellite Layer = "satellite"
	LayerStreet    Layer = "street"

	StyleStandard  Style = "standard"
	StyleGrayscale Style = "grayscale"
	StyleDark      Style = "dark"
)

// noPOIStyle hides business points of interest on Google tiles.
const noPOIStyle = "s.t%3A3%7Cp.v%3Aoff"

// MaxLeftCards is how many cards fit in the left panel before the list is split across both panels.
const MaxLeftCards = 10

// TileLayer describes the base map for the client.
type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	CSSFilter   string `json:"css_filter,omitempty"`
}

// NewTileLayer returns the tile URL template and CSS filter for a layer and style.
// Unknown values fall back to satellite imagery and the standard style.
func NewTileLayer(layer Layer, style Style) TileLayer {
	lyrs := "y"
	if layer == LayerStreet {
		lyrs = "m"
	}

	tile := TileLayer{
		URL:         fmt.Sprintf("https://mt1.google.com/vt/lyrs=%s&x={x}&y={y}&z={z}&apistyle=%s", lyrs, noPOIStyle),
		Attribution: "Google",
	}

	switch style {
	case StyleGrayscale:
		tile.CSSFilter = "grayscale(100%) contrast(110%)"
	case StyleDark:
		if layer == LayerStreet {
			tile.CSSFilter = "invert(100%) hue-rotate(180deg) brightness(95%) contrast(90%)"
		} else {
			tile.CSSFilter = "brightness(45%) contrast(120%) saturate(70%)"
		}
	case StyleStandard:
	}

	return tile
}

// PriceLabel formats a price per square meter as "3,250 €/m²".
func PriceLabel(value *float64) string {
	if value == nil {
		return "- €/m²"
	}
	return humanize.Comma(int64(math.Round(*value))) + " €/m²"
}

// AmountLabel formats a listing price as "250,000€".
func AmountLabel(value *float64) string {
	if value == nil {
		return "-"
	}
	return humanize.Comma(int64(math.Round(*value))) + "€"
}

var markerTemplate = template.Must(template.New("marker").Parse(
	`<div class="plaza-marker">` +
		`<div class="plaza-pill">{{.Ref}}</div>` +
		`{{if .ShowPrice}}<div class="plaza-price">{{.Price}}</div>{{end}}` +
		`</div>`,
))

// MarkerHTML renders the DivIcon body for a development: its reference pill and,
// when showPrice is set, the price per square meter label.
func MarkerHTML(dev models.Development, showPrice bool) (string, error) {
	var out strings.Builder
	err := markerTemplate.Execute(&out, struct {
		Ref       string
		Price     string
		ShowPrice bool
	}{dev.Reference, PriceLabel(dev.UnitPrice), showPrice})
	if err != nil {
		return "", fmt.Errorf("failed to render marker for %s: %w", dev.Reference, err)
	}
	return out.String(), nil
}

// Layout distributes the visible cards across the left and right panels.
type Layout struct {
	Left  []models.Development `json:"left"`
	Right []models.Development `json:"right"`
}

// SplitCards keeps up to MaxLeftCards on the left; larger lists are halved with the odd card on the left.
func SplitCards(devs []models.Development) Layout {
	if len(devs) <= MaxLeftCards {
		return Layout{Left: devs, Right: []models.Development{}}
	}
	mid := len(devs)/2 + len(devs)%2
	return Layout{Left: devs[:mid], Right: devs[mid:]}
}

// FitBounds returns the smallest rectangle holding every development, or false when there are none.
func FitBounds(devs []models.Development) (models.Bounds, bool) {
	if len(devs) == 0 {
		return models.Bounds{}, false
	}

	bounds := models.Bounds{SouthWest: devs[0].Coordinates, NorthEast: devs[0].Coordinates}
	for _, dev := range devs[1:] {
		bounds.SouthWest.Latitude = math.Min(bounds.SouthWest.Latitude, dev.Coordinates.Latitude)
		bounds.SouthWest.Longitude = math.Min(bounds.SouthWest.Longitude, dev.Coordinates.Longitude)
		bounds.NorthEast.Latitude = math.Max(bounds.NorthEast.Latitude, dev.Coordinates.Latitude)
		bounds.NorthEast.Longitude = math.Max(bounds.NorthEast.Longitude, dev.Coordinates.Longitude)
	}
	return bounds, true
}
