package models

// Coordinates represents a geographical point defined by its latitude and longitude.
type Coordinates struct {
	Latitude  float64 `json:"lat"` // Latitude of the geographical point.
	Longitude float64 `json:"lon"` // Longitude of the geographical point.
}

// Bounds is a rectangle on the map given by its south-west and north-east corners.
type Bounds struct {
	SouthWest Coordinates `json:"south_west"`
	NorthEast Coordinates `json:"north_east"`
}

// Contains reports whether the point lies inside the rectangle. Edges are inclusive.
func (b Bounds) Contains(point Coordinates) bool {
	return b.SouthWest.Latitude <= point.Latitude && point.Latitude <= b.NorthEast.Latitude &&
		b.SouthWest.Longitude <= point.Longitude && point.Longitude <= b.NorthEast.Longitude
}
