// Package dataset filters unit rows and aggregates them into developments.
package dataset

import (
	"slices"

	"github.com/UnknownOlympus/plaza/internal/models"
)

// Selection restricts a field to a set of allowed values.
type Selection struct {
	Field   models.Field `json:"field"`
	Allowed []string     `json:"allowed"`
}

// Filter returns the units whose value in every selected field is one of the allowed values.
// Selections on fields the study did not resolve are ignored. The result preserves input order.
func Filter(units []models.Unit, resolved map[models.Field]string, selections []Selection) []models.Unit {
	type check struct {
		field   models.Field
		allowed map[string]struct{}
	}

	checks := make([]check, 0, len(selections))
	for _, sel := range selections {
		if _, ok := resolved[sel.Field]; !ok {
			continue
		}
		allowed := make(map[string]struct{}, len(sel.Allowed))
		for _, value := range sel.Allowed {
			allowed[value] = struct{}{}
		}
		checks = append(checks, check{field: sel.Field, allowed: allowed})
	}

	if len(checks) == 0 {
		return units
	}

	filtered := make([]models.Unit, 0, len(units))
	for _, unit := range units {
		keep := true
		for _, chk := range checks {
			if _, ok := chk.allowed[unit.Value(chk.field)]; !ok {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, unit)
		}
	}

	return filtered
}

// Options returns the sorted distinct values observed for a field. A blank cell contributes
// the empty string, so selecting every option keeps every row.
func Options(units []models.Unit, field models.Field) []string {
	seen := make(map[string]struct{})
	values := []string{}
	for _, unit := range units {
		value := unit.Value(field)
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	slices.Sort(values)

	return values
}
