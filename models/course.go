package models

// Course is a catalogue entry. Titles are unique across the catalogue.
type Course struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
