package repositories

import (
	"context"
	"time"

	"cred-vault.backend/internal/domain/entities"
)

// CredentialRepository defines credential data operations
type CredentialRepository interface {
	Create(ctx context.Context, credential *entities.Credential) error
	GetByID(ctx context.Context, id int64) (*entities.Credential, error)
	// UpdateData replaces the ciphertext payload and iv in place.
	UpdateData(ctx context.Context, id int64, data, iv []byte) error
	Delete(ctx context.Context, id int64) error
	// DeleteByUser removes every credential owned by the user and returns the
	// deleted ids so the caller can cascade onto dependent shares.
	DeleteByUser(ctx context.Context, userID int64) ([]int64, error)
	// ListForUser returns credentials the user owns plus those shared with
	// the user through a share effective at the given instant, distinct,
	// ordered by id.
	ListForUser(ctx context.Context, userID int64, now time.Time) ([]*entities.Credential, error)
}
