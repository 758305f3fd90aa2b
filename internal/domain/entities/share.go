package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// SharePermission represents the access level of a share
type SharePermission string

const (
	SharePermissionRead  SharePermission = "read"
	SharePermissionWrite SharePermission = "write"
)

// Valid reports whether the permission is one of the recognized levels
func (p SharePermission) Valid() bool {
	return p == SharePermissionRead || p == SharePermissionWrite
}

// Share represents a grant of access to a credential for a grantee user.
// At most one share exists per (credential, grantee) pair; re-sharing
// replaces the existing grant.
type Share struct {
	ID           int64           `json:"id"`
	CredentialID int64           `json:"credentialId"`
	GranteeID    int64           `json:"granteeId"`
	Permission   SharePermission `json:"permission"`
	ExpiresAt    null.Time       `json:"expiresAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`

	// Effective is computed at read time against a single clock reading,
	// never stored. Expired rows stay in place for history.
	Effective bool `json:"effective"`
}

// EffectiveAt reports whether the share grants access at the given instant.
// A share with no expiry never expires.
func (s *Share) EffectiveAt(now time.Time) bool {
	return !s.ExpiresAt.Valid || s.ExpiresAt.Time.After(now)
}

// GrantShareInput represents input for granting or replacing a share
type GrantShareInput struct {
	GranteeID  int64      `json:"granteeId" binding:"required"`
	Permission string     `json:"permission"`
	ExpiresAt  *time.Time `json:"expiresAt"`
}
