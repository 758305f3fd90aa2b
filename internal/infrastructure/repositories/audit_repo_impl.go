package repositories

import (
	"context"
	"fmt"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"cred-vault.backend/internal/domain/entities"
	domainerrors "cred-vault.backend/internal/domain/errors"
	"cred-vault.backend/internal/infrastructure/models"
)

// AuditRepository implements the append-only audit trail. No update or
// delete path exists; NullifyActor only clears the actor reference.
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create appends one entry. Never rejects on semantic grounds; a storage
// error propagates so the instrumented mutation rolls back with it.
func (r *AuditRepository) Create(ctx context.Context, entry *entities.AuditLog) error {
	m := &models.AuditLog{
		UserID:       entry.UserID.Ptr(),
		Action:       entry.Action,
		ResourceType: entry.ResourceType.Ptr(),
		ResourceID:   entry.ResourceID.Ptr(),
		IPAddress:    entry.IPAddress.Ptr(),
		UserAgent:    entry.UserAgent.Ptr(),
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("%w: audit append: %v", domainerrors.ErrStorageFailure, err)
	}

	entry.ID = m.ID
	entry.CreatedAt = m.CreatedAt
	return nil
}

// Query returns matching entries ordered by creation time descending plus
// the total match count
func (r *AuditRepository) Query(ctx context.Context, filter entities.AuditQueryFilter, limit, offset int) ([]*entities.AuditLog, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.AuditLog{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ActionPrefix != "" {
		query = query.Where("action LIKE ?", filter.ActionPrefix+"%")
	}
	if !filter.Since.IsZero() {
		query = query.Where("created_at >= ?", filter.Since)
	}
	if !filter.Until.IsZero() {
		query = query.Where("created_at <= ?", filter.Until)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var entryModels []models.AuditLog
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*entities.AuditLog, 0, len(entryModels))
	for _, m := range entryModels {
		model := m
		entries = append(entries, auditToEntity(&model))
	}
	return entries, total, nil
}

// NullifyActor clears the actor reference on entries authored by the user.
// The entries themselves remain.
func (r *AuditRepository) NullifyActor(ctx context.Context, userID int64) error {
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.AuditLog{}).
		Where("user_id = ?", userID).
		Update("user_id", nil).Error
}

func auditToEntity(m *models.AuditLog) *entities.AuditLog {
	return &entities.AuditLog{
		ID:           m.ID,
		UserID:       null.Int64FromPtr(m.UserID),
		Action:       m.Action,
		ResourceType: null.StringFromPtr(m.ResourceType),
		ResourceID:   null.Int64FromPtr(m.ResourceID),
		IPAddress:    null.StringFromPtr(m.IPAddress),
		UserAgent:    null.StringFromPtr(m.UserAgent),
		CreatedAt:    m.CreatedAt,
	}
}
