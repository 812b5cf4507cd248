package model

// User represents a registered account. The password column holds a
// bcrypt hash, never the plaintext. Username uniqueness is checked at
// registration time only; there is no database constraint for it.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"type:text;not null"`
	Email    string `json:"email" gorm:"type:text;not null"`
	Password string `json:"-" gorm:"type:text;not null"`
}
