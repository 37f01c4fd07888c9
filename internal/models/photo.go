package models

import "time"

// CatalogPhoto is the projection served by /images-by-species.
// Image holds the data-URI form, not raw bytes.
type CatalogPhoto struct {
	Login    string `json:"login"`
	Location string `json:"location"`
	Species  string `json:"species"`
	Image    string `json:"image"`
}

// PlayerPhoto is a single photo row for the per-login listings.
type PlayerPhoto struct {
	Login    string    `json:"login"`
	Location string    `json:"location"`
	Species  string    `json:"species"`
	Date     time.Time `json:"date"`
	Image    string    `json:"image"`
}

// SpeciesCountPhoto adds the per-species photo count computed by /species/by-count.
type SpeciesCountPhoto struct {
	Login        string    `json:"login"`
	Location     string    `json:"location"`
	Species      string    `json:"species"`
	Date         time.Time `json:"date"`
	Image        string    `json:"image"`
	SpeciesCount int       `json:"species_count"`
}

// UploadedPhoto echoes the stored record without the binary payload.
type UploadedPhoto struct {
	Login    string    `json:"login"`
	Location string    `json:"location"`
	Species  string    `json:"species"`
	Date     time.Time `json:"date"`
}

type UploadPhotoResponse struct {
	Message string        `json:"message"`
	Image   UploadedPhoto `json:"image"`
}
