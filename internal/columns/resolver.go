// Package columns maps human-authored spreadsheet headers to logical study fields.
package columns

import (
	"fmt"
	"strings"

	"github.com/UnknownOlympus/plaza/internal/models"
)

// MatchMode controls how a rule keyword is compared with a header.
type MatchMode string

const (
	// MatchContains matches when the header contains the keyword.
	MatchContains MatchMode = "contains"
	// MatchEquals matches when the header is exactly the keyword.
	MatchEquals MatchMode = "equals"
)

// Rule binds a set of keywords to a logical field.
type Rule struct {
	Field    models.Field `mapstructure:"field"`
	Match    MatchMode    `mapstructure:"match"`
	Keywords []string     `mapstructure:"keywords"`
}

// DefaultRules is the rule table used when the configuration does not provide one.
//
// Rules for the same field are evaluated in order, so a later rule acts as a fallback.
func DefaultRules() []Rule {
	return []Rule{
		{Field: models.FieldCoordinates, Match: MatchContains, Keywords: []string{"COORD"}},
		{Field: models.FieldReference, Match: MatchContains, Keywords: []string{"REF"}},
		{Field: models.FieldName, Match: MatchContains, Keywords: []string{"PROMOCI", "NOMBRE", "PROYECTO"}},
		{Field: models.FieldUnitPrice, Match: MatchEquals, Keywords: []string{"VRM SCIC"}},
		{Field: models.FieldPrice, Match: MatchEquals, Keywords: []string{"PVP"}},
		{Field: models.FieldTypology, Match: MatchContains, Keywords: []string{"TIPOLOGI", "TIPOLOGÍ"}},
		{Field: models.FieldTier, Match: MatchContains, Keywords: []string{"TIER"}},
		{Field: models.FieldZone, Match: MatchContains, Keywords: []string{"ZONA"}},
		{Field: models.FieldCity, Match: MatchContains, Keywords: []string{"CIUDAD"}},
		{Field: models.FieldFloor, Match: MatchContains, Keywords: []string{"PLANTA"}},
		{Field: models.FieldBedrooms, Match: MatchContains, Keywords: []string{"DORM"}},
	}
}

// Resolver finds headers for logical fields using an ordered rule table.
type Resolver struct {
	rules []Rule
}

// NewResolver validates the rule table and returns a Resolver.
// Keywords are compared case-insensitively.
func NewResolver(rules []Rule) (*Resolver, error) {
	normalized := make([]Rule, 0, len(rules))
	for idx, rule := range rules {
		if rule.Field == "" {
			return nil, fmt.Errorf("column rule %d has no field", idx)
		}
		if rule.Match == "" {
			rule.Match = MatchContains
		}
		if rule.Match != MatchContains && rule.Match != MatchEquals {
			return nil, fmt.Errorf("column rule %d has unknown match mode %q", idx, rule.Match)
		}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("column rule %d (%s) has no keywords", idx, rule.Field)
		}
		keywords := make([]string, len(rule.Keywords))
		for k, keyword := range rule.Keywords {
			keywords[k] = NormalizeHeader(keyword)
		}
		rule.Keywords = keywords
		normalized = append(normalized, rule)
	}

	return &Resolver{rules: normalized}, nil
}

// Resolve returns the header chosen for every field that matched.
// Ties go to the first header in column order. Fields with no match are absent from the result.
//
// The reference and name fields stand in for each other when only one of them resolved.
func (r *Resolver) Resolve(headers []string) map[models.Field]string {
	resolved := make(map[models.Field]string)

	for _, rule := range r.rules {
		if _, done := resolved[rule.Field]; done {
			continue
		}
		if header, ok := rule.find(headers); ok {
			resolved[rule.Field] = header
		}
	}

	ref, hasRef := resolved[models.FieldReference]
	name, hasName := resolved[models.FieldName]
	switch {
	case !hasRef && hasName:
		resolved[models.FieldReference] = name
	case hasRef && !hasName:
		resolved[models.FieldName] = ref
	}

	return resolved
}

func (rule Rule) find(headers []string) (string, bool) {
	for _, header := range headers {
		normalized := NormalizeHeader(header)
		for _, keyword := range rule.Keywords {
			if rule.Match == MatchEquals && normalized == keyword {
				return header, true
			}
			if rule.Match == MatchContains && strings.Contains(normalized, keyword) {
				return header, true
			}
		}
	}

	return "", false
}

// NormalizeHeader trims surrounding whitespace and upper-cases a header.
func NormalizeHeader(header string) string {
	return strings.ToUpper(strings.TrimSpace(header))
}
