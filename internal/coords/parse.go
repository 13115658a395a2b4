// Package coords parses the combined "lat, lon" text used by market-study sheets.
package coords

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/UnknownOlympus/plaza/internal/models"
)

// Parse converts a "lat, lon" string in decimal degrees into coordinates.
// Whitespace anywhere in the text is ignored. The text is split on the first comma
// and both sides must be finite decimals, otherwise ok is false.
func Parse(text string) (models.Coordinates, bool) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	latText, lonText, found := strings.Cut(compact, ",")
	if !found {
		return models.Coordinates{}, false
	}

	lat, ok := parseDecimal(latText)
	if !ok {
		return models.Coordinates{}, false
	}
	lon, ok := parseDecimal(lonText)
	if !ok {
		return models.Coordinates{}, false
	}

	return models.Coordinates{Latitude: lat, Longitude: lon}, true
}

// parseDecimal accepts plain decimal notation only; ParseFloat also takes hexadecimal floats.
func parseDecimal(text string) (float64, bool) {
	if text == "" || strings.TrimLeft(text, "0123456789+-.eE") != "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
