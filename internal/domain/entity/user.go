package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User represents a back-office user.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext past registration
	Name         string
	Role         string // admin, staff
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
