package model

// Skill is a technology or competency listed on the portfolio.
// Names are unique.
type Skill struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
