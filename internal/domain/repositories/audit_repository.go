package repositories

import (
	"context"

	"cred-vault.backend/internal/domain/entities"
)

// AuditRepository defines audit trail operations. Entries are append-only:
// no update or delete is exposed, only actor nulling for user removal.
type AuditRepository interface {
	Create(ctx context.Context, entry *entities.AuditLog) error
	// Query returns entries matching the filter ordered by creation time
	// descending, plus the total match count for pagination.
	Query(ctx context.Context, filter entities.AuditQueryFilter, limit, offset int) ([]*entities.AuditLog, int64, error)
	// NullifyActor clears the actor reference on entries authored by the
	// user; the entries themselves remain.
	NullifyActor(ctx context.Context, userID int64) error
}
