package model

// MyInfo holds the personal information shown on the portfolio landing page.
// Exactly one row exists (id = 1); updates overwrite it in place.
type MyInfo struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Title   string `json:"title" db:"title"`
	Email   string `json:"email" db:"email"`
	Phone   string `json:"phone" db:"phone"`
	AboutMe string `json:"aboutMe" db:"about_me"`
}
