package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// EkycStatus represents the state of a verification session
type EkycStatus string

const (
	EkycStatusPending  EkycStatus = "pending"
	EkycStatusInReview EkycStatus = "in_review"
	EkycStatusApproved EkycStatus = "approved"
	EkycStatusRejected EkycStatus = "rejected"
	EkycStatusExpired  EkycStatus = "expired"
)

// Valid reports whether the status belongs to the recognized set.
// Transition legality between statuses is not enforced; provider callbacks
// drive the lifecycle.
func (s EkycStatus) Valid() bool {
	switch s {
	case EkycStatusPending, EkycStatusInReview, EkycStatusApproved,
		EkycStatusRejected, EkycStatusExpired:
		return true
	}
	return false
}

// EkycSession represents one identity-verification attempt for a user.
// Provider, reference id and the result snapshot are recorded verbatim;
// the provider protocol itself is out of scope.
type EkycSession struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"userId"`
	Status      EkycStatus  `json:"status"`
	Provider    null.String `json:"provider,omitempty"`
	ReferenceID null.String `json:"referenceId,omitempty"`
	ResultJSON  null.String `json:"resultJson,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// RecordEkycResultInput represents input for a provider callback result
type RecordEkycResultInput struct {
	Status      string `json:"status" binding:"required"`
	ReferenceID string `json:"referenceId"`
	ResultJSON  string `json:"resultJson"`
}
