package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Credential represents an encrypted secret owned by exactly one user.
// Data and IV are opaque to this core: callers supply ciphertext produced by
// an external encryption service, and the core never inspects or transforms
// either field. IV is optional because some ciphers embed it in the payload.
type Credential struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"userId"`
	Title       string      `json:"title"`
	Description null.String `json:"description,omitempty"`
	Data        []byte      `json:"data"`
	IV          []byte      `json:"iv,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// CreateCredentialInput represents input for creating a credential
type CreateCredentialInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Data        []byte `json:"data" binding:"required"`
	IV          []byte `json:"iv"`
}

// UpdateCredentialInput represents input for replacing a credential's ciphertext
type UpdateCredentialInput struct {
	Data []byte `json:"data" binding:"required"`
	IV   []byte `json:"iv"`
}
