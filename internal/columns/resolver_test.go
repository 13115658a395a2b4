package columns_test

import (
	"testing"

	"github.com/UnknownOlympus/plaza/internal/columns"
	"github.com/UnknownOlympus/plaza/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	resolver, err := columns.NewResolver(columns.DefaultRules())
	require.NoError(t, err)

	t.Run("typical study headers", func(t *testing.T) {
		headers := []string{
			"REF", "PROMOCIÓN", "COORDENADAS", "CIUDAD", "ZONA", "TIER",
			"TIPOLOGIA", "PLANTA", "Nº DORM", "PVP", "VRM SCIC",
		}

		got := resolver.Resolve(headers)

		assert.Equal(t, "COORDENADAS", got[models.FieldCoordinates])
		assert.Equal(t, "REF", got[models.FieldReference])
		assert.Equal(t, "PROMOCIÓN", got[models.FieldName])
		assert.Equal(t, "VRM SCIC", got[models.FieldUnitPrice])
		assert.Equal(t, "PVP", got[models.FieldPrice])
		assert.Equal(t, "TIPOLOGIA", got[models.FieldTypology])
		assert.Equal(t, "Nº DORM", got[models.FieldBedrooms])
		assert.Equal(t, "PLANTA", got[models.FieldFloor])
	})

	t.Run("first header in column order wins", func(t *testing.T) {
		got := resolver.Resolve([]string{"REF CATASTRAL", "REF"})

		assert.Equal(t, "REF CATASTRAL", got[models.FieldReference])
	})

	t.Run("matching ignores case and padding", func(t *testing.T) {
		got := resolver.Resolve([]string{"  coord gps ", "pvp"})

		assert.Equal(t, "  coord gps ", got[models.FieldCoordinates])
		assert.Equal(t, "pvp", got[models.FieldPrice])
	})

	t.Run("equals rules do not match substrings", func(t *testing.T) {
		got := resolver.Resolve([]string{"PVP MEDIO", "VRM SCIC ANTIGUO"})

		assert.NotContains(t, got, models.FieldPrice)
		assert.NotContains(t, got, models.FieldUnitPrice)
	})

	t.Run("name stands in for a missing reference", func(t *testing.T) {
		got := resolver.Resolve([]string{"NOMBRE", "COORD"})

		assert.Equal(t, "NOMBRE", got[models.FieldReference])
		assert.Equal(t, "NOMBRE", got[models.FieldName])
	})

	t.Run("reference stands in for a missing name", func(t *testing.T) {
		got := resolver.Resolve([]string{"REF", "COORD"})

		assert.Equal(t, "REF", got[models.FieldName])
	})

	t.Run("nothing matches", func(t *testing.T) {
		got := resolver.Resolve([]string{"A", "B"})

		assert.Empty(t, got)
	})
}

func TestResolveFallbackRule(t *testing.T) {
	resolver, err := columns.NewResolver([]columns.Rule{
		{Field: models.FieldReference, Match: columns.MatchEquals, Keywords: []string{"CODIGO"}},
		{Field: models.FieldReference, Match: columns.MatchContains, Keywords: []string{"REF"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "REFERENCIA", resolver.Resolve([]string{"REFERENCIA"})[models.FieldReference])
	assert.Equal(t, "codigo", resolver.Resolve([]string{"REFERENCIA", "codigo"})[models.FieldReference])
}

func TestNewResolverValidation(t *testing.T) {
	tests := []struct {
		name string
		rule columns.Rule
		msg  string
	}{
		{"missing field", columns.Rule{Keywords: []string{"X"}}, "has no field"},
		{"bad mode", columns.Rule{Field: models.FieldTier, Match: "prefix", Keywords: []string{"X"}}, "unknown match mode"},
		{"no keywords", columns.Rule{Field: models.FieldTier}, "has no keywords"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolver, err := columns.NewResolver([]columns.Rule{tc.rule})

			require.Nil(t, resolver)
			require.ErrorContains(t, err, tc.msg)
		})
	}

	t.Run("empty mode defaults to contains", func(t *testing.T) {
		resolver, err := columns.NewResolver([]columns.Rule{{Field: models.FieldTier, Keywords: []string{"tier"}}})

		require.NoError(t, err)
		assert.Equal(t, "SEGMENTO TIER", resolver.Resolve([]string{"SEGMENTO TIER"})[models.FieldTier])
	})
}
