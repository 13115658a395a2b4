package models

// Development is the per-reference aggregate of the units of one real-estate project.
type Development struct {
	Reference   string      `json:"ref"`
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	Units       int         `json:"units"`
	MeanPrice   *float64    `json:"mean_price,omitempty"` // Mean listing price, nil when no price column.
	UnitPrice   *float64    `json:"unit_price,omitempty"` // Price per square meter statistic, nil when absent.
	Bedrooms    string      `json:"bedrooms,omitempty"`   // Label such as "1D-2D-3D".
}

// DisplayName returns the name of the development, falling back to its reference.
func (d Development) DisplayName() string {
	if d.Name == "" {
		return d.Reference
	}
	return d.Name
}
