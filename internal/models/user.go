package models

import (
	"github.com/google/uuid"
)

// User is the read-only view of an account owned by the identity service.
type User struct {
	UserID   uuid.UUID `json:"user_id" db:"user_id"`   // Primary key
	Username string    `json:"username" db:"username"` // Unique username
	Email    string    `json:"email" db:"email"`       // Address for confirmation codes
}
