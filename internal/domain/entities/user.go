package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// User represents an account record. Registration and authentication are
// handled by an external identity service; this core only checks existence
// and the active flag.
type User struct {
	ID           int64       `json:"id"`
	Email        string      `json:"email"`
	Username     null.String `json:"username,omitempty"`
	PasswordHash null.String `json:"-"`
	IsActive     bool        `json:"isActive"`
	IsAdmin      bool        `json:"isAdmin"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// RegisterUserInput represents input for creating a user record
type RegisterUserInput struct {
	Email        string `json:"email" binding:"required,email"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}
