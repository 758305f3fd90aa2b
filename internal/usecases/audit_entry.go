package usecases

import (
	"github.com/volatiletech/null/v8"

	"cred-vault.backend/internal/domain/entities"
)

// newAuditEntry builds an audit entry for a mutation. actorID <= 0 records a
// null actor (system action).
func newAuditEntry(actorID int64, action, resourceType string, resourceID int64, meta entities.AuditMeta) *entities.AuditLog {
	entry := &entities.AuditLog{Action: action}
	if actorID > 0 {
		entry.UserID = null.Int64From(actorID)
	}
	if resourceType != "" {
		entry.ResourceType = null.StringFrom(resourceType)
	}
	if resourceID > 0 {
		entry.ResourceID = null.Int64From(resourceID)
	}
	if meta.IPAddress != "" {
		entry.IPAddress = null.StringFrom(meta.IPAddress)
	}
	if meta.UserAgent != "" {
		entry.UserAgent = null.StringFrom(meta.UserAgent)
	}
	return entry
}
