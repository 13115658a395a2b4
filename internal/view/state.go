// Package view holds the per-session visibility state of developments.
//
// A State is immutable: every operation returns a new State and leaves the receiver untouched,
// so the dashboard can send the state along with each request and store the one it gets back.
package view

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/UnknownOlympus/plaza/internal/models"
)

// State is the set of development references the user has hidden.
type State struct {
	hidden map[string]struct{}
}

// NewState returns a state with the given references hidden.
func NewState(hidden ...string) State {
	set := make(map[string]struct{}, len(hidden))
	for _, ref := range hidden {
		set[ref] = struct{}{}
	}
	return State{hidden: set}
}

// Hidden returns the hidden references in sorted order.
func (s State) Hidden() []string {
	refs := slices.Collect(maps.Keys(s.hidden))
	slices.Sort(refs)
	if refs == nil {
		refs = []string{}
	}
	return refs
}

// Len returns the number of hidden references.
func (s State) Len() int {
	return len(s.hidden)
}

// IsHidden reports whether a reference is hidden.
func (s State) IsHidden(ref string) bool {
	_, ok := s.hidden[ref]
	return ok
}

// Hide returns a state with ref added to the hidden set.
func (s State) Hide(ref string) State {
	next := s.clone()
	next.hidden[ref] = struct{}{}
	return next
}

// Restore returns a state with ref removed from the hidden set.
func (s State) Restore(ref string) State {
	next := s.clone()
	delete(next.hidden, ref)
	return next
}

// RestoreAll returns an empty state.
func (s State) RestoreAll() State {
	return NewState()
}

// HideOutside returns a state that also hides every development located outside bounds.
// It is a one-shot operation: later viewport changes do not re-evaluate the result.
func (s State) HideOutside(devs []models.Development, bounds models.Bounds) State {
	next := s.clone()
	for _, dev := range devs {
		if !bounds.Contains(dev.Coordinates) {
			next.hidden[dev.Reference] = struct{}{}
		}
	}
	return next
}

// Partition splits developments into visible and hidden ones, preserving order.
func (s State) Partition(devs []models.Development) ([]models.Development, []models.Development) {
	visible := make([]models.Development, 0, len(devs))
	hidden := []models.Development{}
	for _, dev := range devs {
		if s.IsHidden(dev.Reference) {
			hidden = append(hidden, dev)
		} else {
			visible = append(visible, dev)
		}
	}
	return visible, hidden
}

// MarshalJSON encodes the state as {"hidden": [...]} with sorted references.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{Hidden: s.Hidden()})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewState(raw.Hidden...)
	return nil
}

type stateJSON struct {
	Hidden []string `json:"hidden"`
}

func (s State) clone() State {
	next := make(map[string]struct{}, len(s.hidden)+1)
	maps.Copy(next, s.hidden)
	return State{hidden: next}
}
