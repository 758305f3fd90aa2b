package repositories

import (
	"context"

	"cred-vault.backend/internal/domain/entities"
)

// ShareRepository defines share data operations
type ShareRepository interface {
	// Upsert inserts the share or, if one already exists for the
	// (credential, grantee) pair, replaces its permission and expiry.
	// The uniqueness invariant is enforced by the store's unique constraint,
	// not by a read-then-write check.
	Upsert(ctx context.Context, share *entities.Share) error
	GetByCredentialAndGrantee(ctx context.Context, credentialID, granteeID int64) (*entities.Share, error)
	Delete(ctx context.Context, credentialID, granteeID int64) error
	// ListByCredential returns all shares on the credential, expired rows
	// included, ordered by id.
	ListByCredential(ctx context.Context, credentialID int64) ([]*entities.Share, error)
	DeleteByCredential(ctx context.Context, credentialID int64) error
	DeleteByGrantee(ctx context.Context, granteeID int64) error
	// DeleteByOwner removes shares on every credential owned by the user.
	DeleteByOwner(ctx context.Context, ownerID int64) error
}
