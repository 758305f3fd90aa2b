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

// EkycRepository implements eKYC session data operations
type EkycRepository struct {
	db *gorm.DB
}

// NewEkycRepository creates a new eKYC repository
func NewEkycRepository(db *gorm.DB) *EkycRepository {
	return &EkycRepository{db: db}
}

// Create creates a new session
func (r *EkycRepository) Create(ctx context.Context, session *entities.EkycSession) error {
	m := &models.EkycSession{
		UserID:      session.UserID,
		Status:      string(session.Status),
		Provider:    session.Provider.Ptr(),
		ReferenceID: session.ReferenceID.Ptr(),
		ResultJSON:  session.ResultJSON.Ptr(),
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	session.ID = m.ID
	session.CreatedAt = m.CreatedAt
	session.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a session by ID
func (r *EkycRepository) GetByID(ctx context.Context, id int64) (*entities.EkycSession, error) {
	var m models.EkycSession
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return ekycToEntity(&m), nil
}

// UpdateResult records a provider outcome on an existing session
func (r *EkycRepository) UpdateResult(ctx context.Context, session *entities.EkycSession) error {
	updates := map[string]interface{}{
		"status":     string(session.Status),
		"updated_at": time.Now(),
	}
	if session.ReferenceID.Valid {
		updates["reference_id"] = session.ReferenceID.String
	}
	if session.ResultJSON.Valid {
		updates["result_json"] = session.ResultJSON.String
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.EkycSession{}).
		Where("id = ?", session.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// GetLatestByUser gets the most recent session by creation time
func (r *EkycRepository) GetLatestByUser(ctx context.Context, userID int64) (*entities.EkycSession, error) {
	var m models.EkycSession
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return ekycToEntity(&m), nil
}

// DeleteByUser removes all sessions for a user
func (r *EkycRepository) DeleteByUser(ctx context.Context, userID int64) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Delete(&models.EkycSession{}, "user_id = ?", userID).Error
}

// ExpirePendingBefore marks pending sessions created before the cutoff as
// expired and returns their ids
func (r *EkycRepository) ExpirePendingBefore(ctx context.Context, cutoff time.Time) ([]int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var ids []int64
	err := db.Model(&models.EkycSession{}).
		Where("status = ? AND created_at < ?", string(entities.EkycStatusPending), cutoff).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	err = db.Model(&models.EkycSession{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     string(entities.EkycStatusExpired),
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func ekycToEntity(m *models.EkycSession) *entities.EkycSession {
	return &entities.EkycSession{
		ID:          m.ID,
		UserID:      m.UserID,
		Status:      entities.EkycStatus(m.Status),
		Provider:    null.StringFromPtr(m.Provider),
		ReferenceID: null.StringFromPtr(m.ReferenceID),
		ResultJSON:  null.StringFromPtr(m.ResultJSON),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
