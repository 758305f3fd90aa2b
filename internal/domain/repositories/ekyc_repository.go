package repositories

import (
	"context"
	"time"

	"cred-vault.backend/internal/domain/entities"
)

// EkycRepository defines eKYC session data operations
type EkycRepository interface {
	Create(ctx context.Context, session *entities.EkycSession) error
	GetByID(ctx context.Context, id int64) (*entities.EkycSession, error)
	UpdateResult(ctx context.Context, session *entities.EkycSession) error
	GetLatestByUser(ctx context.Context, userID int64) (*entities.EkycSession, error)
	DeleteByUser(ctx context.Context, userID int64) error
	// ExpirePendingBefore marks pending sessions created before the cutoff
	// as expired and returns their ids.
	ExpirePendingBefore(ctx context.Context, cutoff time.Time) ([]int64, error)
}
