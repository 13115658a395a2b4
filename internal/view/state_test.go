package view_test

import (
	"encoding/json"
	"testing"

	"github.com/UnknownOlympus/plaza/internal/models"
	"github.com/UnknownOlympus/plaza/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devAt(ref string, lat, lon float64) models.Development {
	return models.Development{Reference: ref, Coordinates: models.Coordinates{Latitude: lat, Longitude: lon}}
}

func TestStateOperations(t *testing.T) {
	t.Run("hide then restore all", func(t *testing.T) {
		state := view.NewState().Hide("A1")
		require.Equal(t, 1, state.Len())

		assert.Equal(t, 0, state.RestoreAll().Len())
	})

	t.Run("operations do not mutate the receiver", func(t *testing.T) {
		base := view.NewState("A1")

		hidden := base.Hide("B2")
		restored := base.Restore("A1")

		assert.Equal(t, []string{"A1"}, base.Hidden())
		assert.Equal(t, []string{"A1", "B2"}, hidden.Hidden())
		assert.Empty(t, restored.Hidden())
	})

	t.Run("restore unknown reference is a no-op", func(t *testing.T) {
		state := view.NewState("A1").Restore("Z9")

		assert.Equal(t, []string{"A1"}, state.Hidden())
	})

	t.Run("zero value is usable", func(t *testing.T) {
		var state view.State

		assert.False(t, state.IsHidden("A1"))
		assert.Equal(t, []string{}, state.Hidden())
		assert.True(t, state.Hide("A1").IsHidden("A1"))
	})
}

func TestPartition(t *testing.T) {
	devs := []models.Development{devAt("A1", 0, 0), devAt("B2", 0, 0), devAt("C3", 0, 0)}

	visible, hidden := view.NewState("B2").Partition(devs)

	assert.Equal(t, []models.Development{devs[0], devs[2]}, visible)
	assert.Equal(t, []models.Development{devs[1]}, hidden)
}

func TestHideOutside(t *testing.T) {
	devs := []models.Development{
		devAt("IN", 41.4, 2.15),
		devAt("EDGE", 41.0, 2.0),
		devAt("NORTH", 42.0, 2.1),
		devAt("WEST", 41.4, -3.7),
	}
	bounds := models.Bounds{
		SouthWest: models.Coordinates{Latitude: 41.0, Longitude: 2.0},
		NorthEast: models.Coordinates{Latitude: 41.6, Longitude: 2.3},
	}

	state := view.NewState("KEPT").HideOutside(devs, bounds)

	assert.Equal(t, []string{"KEPT", "NORTH", "WEST"}, state.Hidden())
}

func TestApply(t *testing.T) {
	devs := []models.Development{devAt("A1", 10, 10), devAt("B2", 50, 50)}
	bounds := &models.Bounds{NorthEast: models.Coordinates{Latitude: 20, Longitude: 20}}

	tests := []struct {
		name    string
		start   view.State
		action  view.Action
		want    []string
		wantErr string
	}{
		{"none", view.NewState("A1"), view.Action{}, []string{"A1"}, ""},
		{"hide", view.NewState(), view.Action{Kind: view.ActionHide, Ref: "A1"}, []string{"A1"}, ""},
		{"restore", view.NewState("A1", "B2"), view.Action{Kind: view.ActionRestore, Ref: "A1"}, []string{"B2"}, ""},
		{"restore all", view.NewState("A1", "B2"), view.Action{Kind: view.ActionRestoreAll}, []string{}, ""},
		{"hide outside", view.NewState(), view.Action{Kind: view.ActionHideOutside, Bounds: bounds}, []string{"B2"}, ""},
		{"hide without ref", view.NewState(), view.Action{Kind: view.ActionHide}, nil, "requires a reference"},
		{"hide outside without bounds", view.NewState(), view.Action{Kind: view.ActionHideOutside}, nil, "requires map bounds"},
		{"unknown", view.NewState(), view.Action{Kind: "explode"}, nil, "unknown action"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.start.Apply(tc.action, devs)

			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Hidden())
		})
	}
}

func TestStateJSON(t *testing.T) {
	data, err := json.Marshal(view.NewState("B2", "A1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"hidden":["A1","B2"]}`, string(data))

	var decoded view.State
	require.NoError(t, json.Unmarshal([]byte(`{"hidden":["C3"]}`), &decoded))
	assert.True(t, decoded.IsHidden("C3"))

	empty, err := json.Marshal(view.State{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"hidden":[]}`, string(empty))
}
