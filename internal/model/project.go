package model

import "time"

// Project is a portfolio work entry. Titles are unique. KeyFeatures is
// persisted as a JSON array in a single text column; the store handles the
// conversion. ImageURL is the public path of the project image under
// /images/ and is kept consistent with the file on disk.
type Project struct {
	ID               int64     `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Industry         string    `json:"industry" db:"industry"`
	ShortDescription string    `json:"shortDescription" db:"short_description"`
	Description      string    `json:"description" db:"description"`
	EndDate          time.Time `json:"endDate" db:"end_date"`
	KeyFeatures      []string  `json:"keyFeatures" db:"-"`
	Link             string    `json:"link" db:"link"`
	ImageURL         string    `json:"imageUrl" db:"image_url"`
	IsSourceCode     bool      `json:"isSourceCode" db:"is_source_code"`
}

// ProjectSummary is the trimmed-down shape returned by the public project
// listing endpoint.
type ProjectSummary struct {
	ID               int64  `json:"id" db:"id"`
	Title            string `json:"title" db:"title"`
	ShortDescription string `json:"shortDescription" db:"short_description"`
	ImageURL         string `json:"imageUrl" db:"image_url"`
}
