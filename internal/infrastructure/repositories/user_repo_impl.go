package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"cred-vault.backend/internal/domain/entities"
	domainerrors "cred-vault.backend/internal/domain/errors"
	"cred-vault.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. Email and username uniqueness is enforced by the
// store's unique indexes at insert time, surfaced as ErrConflict.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		Email:        user.Email,
		Username:     user.Username.Ptr(),
		PasswordHash: user.PasswordHash.Ptr(),
		IsActive:     user.IsActive,
		IsAdmin:      user.IsAdmin,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return err
	}

	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// SetActive toggles the soft-disable flag
func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes the user row. Dependent rows are the caller's concern: the
// user usecase cascades credentials, shares and sessions in the same
// transaction before calling this.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		Email:        m.Email,
		Username:     null.StringFromPtr(m.Username),
		PasswordHash: null.StringFromPtr(m.PasswordHash),
		IsActive:     m.IsActive,
		IsAdmin:      m.IsAdmin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// isUniqueViolation recognizes unique-constraint errors from both backends:
// gorm's translated error for sqlite and the raw pq error for postgres.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
