package model

// SocialMedia is a link to an external profile (GitHub, LinkedIn, ...).
// Platforms are unique.
type SocialMedia struct {
	ID       int64  `json:"id" db:"id"`
	Platform string `json:"platform" db:"platform"`
	Link     string `json:"link" db:"link"`
}
