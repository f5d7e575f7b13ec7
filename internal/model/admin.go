package model

// Admin represents the administrative user who manages portfolio content
// through the admin API. Passwords are stored as salted argon2id hashes.
type Admin struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"` // argon2id PHC string, never expose
}
