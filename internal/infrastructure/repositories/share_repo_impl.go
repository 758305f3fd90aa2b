package repositories

import (
	"context"
	"errors"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cred-vault.backend/internal/domain/entities"
	domainerrors "cred-vault.backend/internal/domain/errors"
	"cred-vault.backend/internal/infrastructure/models"
)

// ShareRepository implements share data operations
type ShareRepository struct {
	db *gorm.DB
}

// NewShareRepository creates a new share repository
func NewShareRepository(db *gorm.DB) *ShareRepository {
	return &ShareRepository{db: db}
}

// Upsert inserts the share or replaces permission and expiry of the existing
// row for the (credential, grantee) pair. A single INSERT ... ON CONFLICT
// under the unique constraint, so concurrent grants cannot race into
// duplicates.
func (r *ShareRepository) Upsert(ctx context.Context, share *entities.Share) error {
	m := &models.Share{
		CredentialID:     share.CredentialID,
		SharedWithUserID: share.GranteeID,
		Permission:       string(share.Permission),
		ExpiresAt:        share.ExpiresAt.Ptr(),
	}

	err := GetDB(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "credential_id"}, {Name: "shared_with_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"permission", "expires_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	// On the update path sqlite reports the new row's id; re-read so the
	// entity always carries the persisted row.
	persisted, err := r.GetByCredentialAndGrantee(ctx, share.CredentialID, share.GranteeID)
	if err != nil {
		return err
	}
	share.ID = persisted.ID
	share.CreatedAt = persisted.CreatedAt
	return nil
}

// GetByCredentialAndGrantee gets the share for a (credential, grantee) pair
func (r *ShareRepository) GetByCredentialAndGrantee(ctx context.Context, credentialID, granteeID int64) (*entities.Share, error) {
	var m models.Share
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("credential_id = ? AND shared_with_user_id = ?", credentialID, granteeID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return shareToEntity(&m), nil
}

// Delete revokes the share for a (credential, grantee) pair
func (r *ShareRepository) Delete(ctx context.Context, credentialID, granteeID int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Where("credential_id = ? AND shared_with_user_id = ?", credentialID, granteeID).
		Delete(&models.Share{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByCredential lists all shares on a credential, expired rows included
func (r *ShareRepository) ListByCredential(ctx context.Context, credentialID int64) ([]*entities.Share, error) {
	var shareModels []models.Share
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("credential_id = ?", credentialID).
		Order("id").
		Find(&shareModels).Error
	if err != nil {
		return nil, err
	}

	shares := make([]*entities.Share, 0, len(shareModels))
	for _, m := range shareModels {
		model := m
		shares = append(shares, shareToEntity(&model))
	}
	return shares, nil
}

// DeleteByCredential removes all shares on a credential
func (r *ShareRepository) DeleteByCredential(ctx context.Context, credentialID int64) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Delete(&models.Share{}, "credential_id = ?", credentialID).Error
}

// DeleteByGrantee removes all shares granted to a user
func (r *ShareRepository) DeleteByGrantee(ctx context.Context, granteeID int64) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Delete(&models.Share{}, "shared_with_user_id = ?", granteeID).Error
}

// DeleteByOwner removes shares on every credential owned by the user
func (r *ShareRepository) DeleteByOwner(ctx context.Context, ownerID int64) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("credential_id IN (?)",
			GetDB(ctx, r.db).Model(&models.Credential{}).Select("id").Where("user_id = ?", ownerID)).
		Delete(&models.Share{}).Error
}

func shareToEntity(m *models.Share) *entities.Share {
	return &entities.Share{
		ID:           m.ID,
		CredentialID: m.CredentialID,
		GranteeID:    m.SharedWithUserID,
		Permission:   entities.SharePermission(m.Permission),
		ExpiresAt:    null.TimeFromPtr(m.ExpiresAt),
		CreatedAt:    m.CreatedAt,
	}
}
