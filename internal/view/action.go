package view

import (
	"fmt"

	"github.com/UnknownOlympus/plaza/internal/models"
)

// ActionKind names a user interaction that changes the view state.
type ActionKind string

// Supported actions.
const (
	ActionNone        ActionKind = ""
	ActionHide        ActionKind = "hide"
	ActionRestore     ActionKind = "restore"
	ActionRestoreAll  ActionKind = "restore_all"
	ActionHideOutside ActionKind = "hide_outside"
)

// Action is one user interaction. Ref is used by hide and restore, Bounds by hide_outside.
type Action struct {
	Kind   ActionKind     `json:"kind"`
	Ref    string         `json:"ref,omitempty"`
	Bounds *models.Bounds `json:"bounds,omitempty"`
}

// Apply returns the state that results from performing the action.
// The developments are the ones currently on screen and only matter for hide_outside.
func (s State) Apply(action Action, devs []models.Development) (State, error) {
	switch action.Kind {
	case ActionNone:
		return s, nil
	case ActionHide:
		if action.Ref == "" {
			return s, fmt.Errorf("action %q requires a reference", action.Kind)
		}
		return s.Hide(action.Ref), nil
	case ActionRestore:
		if action.Ref == "" {
			return s, fmt.Errorf("action %q requires a reference", action.Kind)
		}
		return s.Restore(action.Ref), nil
	case ActionRestoreAll:
		return s.RestoreAll(), nil
	case ActionHideOutside:
		if action.Bounds == nil {
			return s, fmt.Errorf("action %q requires map bounds", action.Kind)
		}
		return s.HideOutside(devs, *action.Bounds), nil
	default:
		return s, fmt.Errorf("unknown action %q", action.Kind)
	}
}
