package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"cred-vault.backend/internal/domain/entities"
	domainerrors "cred-vault.backend/internal/domain/errors"
	"cred-vault.backend/internal/infrastructure/models"
)

// CredentialRepository implements credential data operations. Ciphertext and
// iv pass through untouched; this layer never inspects them.
type CredentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Create creates a new credential
func (r *CredentialRepository) Create(ctx context.Context, credential *entities.Credential) error {
	m := &models.Credential{
		UserID:      credential.UserID,
		Title:       credential.Title,
		Description: credential.Description.Ptr(),
		Data:        credential.Data,
		IV:          credential.IV,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	credential.ID = m.ID
	credential.CreatedAt = m.CreatedAt
	credential.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a credential by ID
func (r *CredentialRepository) GetByID(ctx context.Context, id int64) (*entities.Credential, error) {
	var m models.Credential
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return credentialToEntity(&m), nil
}

// UpdateData replaces the ciphertext payload and iv in place
func (r *CredentialRepository) UpdateData(ctx context.Context, id int64, data, iv []byte) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Credential{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"data_encrypted": data,
			"iv":             iv,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a credential row
func (r *CredentialRepository) Delete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Credential{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByUser removes every credential owned by the user and returns the
// deleted ids so the caller can cascade onto shares.
func (r *CredentialRepository) DeleteByUser(ctx context.Context, userID int64) ([]int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var ids []int64
	if err := db.Model(&models.Credential{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if err := db.Delete(&models.Credential{}, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListForUser returns owned plus effectively shared credentials, distinct,
// ordered by id. Effectiveness is evaluated against the caller's single
// clock reading, not the database clock.
func (r *CredentialRepository) ListForUser(ctx context.Context, userID int64, now time.Time) ([]*entities.Credential, error) {
	var credentialModels []models.Credential
	err := GetDB(ctx, r.db).WithContext(ctx).
		Distinct("credentials.*").
		Joins("LEFT JOIN shares ON shares.credential_id = credentials.id").
		Where("credentials.user_id = ?", userID).
		Or("shares.shared_with_user_id = ? AND (shares.expires_at IS NULL OR shares.expires_at > ?)", userID, now).
		Order("credentials.id").
		Find(&credentialModels).Error
	if err != nil {
		return nil, err
	}

	credentials := make([]*entities.Credential, 0, len(credentialModels))
	for _, m := range credentialModels {
		model := m
		credentials = append(credentials, credentialToEntity(&model))
	}
	return credentials, nil
}

func credentialToEntity(m *models.Credential) *entities.Credential {
	return &entities.Credential{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: null.StringFromPtr(m.Description),
		Data:        m.Data,
		IV:          m.IV,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
