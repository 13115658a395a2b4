package dataset

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/plaza/internal/models"
	"github.com/montanaflynn/stats"
)

// Statistic selects how per-development unit prices are summarized.
type Statistic string

const (
	// StatMedian summarizes with the median.
	StatMedian Statistic = "median"
	// StatMean summarizes with the arithmetic mean.
	StatMean Statistic = "mean"
)

// ParseStatistic validates a statistic name.
func ParseStatistic(name string) (Statistic, error) {
	switch stat := Statistic(strings.ToLower(strings.TrimSpace(name))); stat {
	case StatMedian, StatMean:
		return stat, nil
	default:
		return "", fmt.Errorf("unknown statistic %q, expected median or mean", name)
	}
}

// Aggregate groups units by reference, one development per distinct reference,
// in the order references first appear.
//
// The listing price is always averaged; the unit price uses stat. Price aggregates are
// only set when the study resolved the column and at least one value parses as a number.
func Aggregate(units []models.Unit, resolved map[models.Field]string, stat Statistic) []models.Development {
	_, hasPrice := resolved[models.FieldPrice]
	_, hasUnitPrice := resolved[models.FieldUnitPrice]
	_, hasBedrooms := resolved[models.FieldBedrooms]

	order := []string{}
	groups := make(map[string][]models.Unit)
	for _, unit := range units {
		if _, ok := groups[unit.Reference]; !ok {
			order = append(order, unit.Reference)
		}
		groups[unit.Reference] = append(groups[unit.Reference], unit)
	}

	developments := make([]models.Development, 0, len(order))
	for _, ref := range order {
		members := groups[ref]
		first := members[0]
		dev := models.Development{
			Reference:   ref,
			Name:        firstName(members),
			Coordinates: first.Coordinates,
			Units:       len(members),
		}
		if hasPrice {
			dev.MeanPrice = summarize(numbers(members, models.FieldPrice), StatMean)
		}
		if hasUnitPrice {
			dev.UnitPrice = summarize(numbers(members, models.FieldUnitPrice), stat)
		}
		if hasBedrooms {
			dev.Bedrooms = BedroomLabel(values(members, models.FieldBedrooms))
		}
		developments = append(developments, dev)
	}

	return developments
}

// BedroomLabel normalizes bedroom counts ("2", "3.0", "2d") into a sorted,
// deduplicated label such as "2D-3D".
func BedroomLabel(raw []string) string {
	seen := make(map[string]struct{})
	tokens := []string{}
	for _, value := range raw {
		token := strings.ToUpper(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), ".0")))
		if token == "" {
			continue
		}
		if !strings.HasSuffix(token, "D") {
			token += "D"
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	slices.Sort(tokens)

	return strings.Join(tokens, "-")
}

func values(units []models.Unit, field models.Field) []string {
	out := make([]string, 0, len(units))
	for _, unit := range units {
		out = append(out, unit.Value(field))
	}
	return out
}

func numbers(units []models.Unit, field models.Field) []float64 {
	out := make([]float64, 0, len(units))
	for _, unit := range units {
		value, err := strconv.ParseFloat(strings.TrimSpace(unit.Value(field)), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		out = append(out, value)
	}
	return out
}

func summarize(nums []float64, stat Statistic) *float64 {
	if len(nums) == 0 {
		return nil
	}

	var (
		result float64
		err    error
	)
	switch stat {
	case StatMedian:
		result, err = stats.Median(nums)
	default:
		result, err = stats.Mean(nums)
	}
	if err != nil {
		return nil
	}

	return &result
}

func firstName(units []models.Unit) string {
	for _, unit := range units {
		if unit.Name != "" {
			return unit.Name
		}
	}
	return ""
}
