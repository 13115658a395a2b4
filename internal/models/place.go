package models

// Place is a named location returned by a place search provider.
type Place struct {
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}
