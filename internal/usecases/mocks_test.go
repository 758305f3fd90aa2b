package usecases_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"cred-vault.backend/internal/domain/entities"
)

// fixedClock pins expiry checks to a known instant
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// passthroughUow runs the unit-of-work body without a real transaction
type passthroughUow struct{}

func (passthroughUow) Do(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock CredentialRepository
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) Create(ctx context.Context, credential *entities.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

func (m *MockCredentialRepository) GetByID(ctx context.Context, id int64) (*entities.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Credential), args.Error(1)
}

func (m *MockCredentialRepository) UpdateData(ctx context.Context, id int64, data, iv []byte) error {
	args := m.Called(ctx, id, data, iv)
	return args.Error(0)
}

func (m *MockCredentialRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCredentialRepository) DeleteByUser(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockCredentialRepository) ListForUser(ctx context.Context, userID int64, now time.Time) ([]*entities.Credential, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Credential), args.Error(1)
}

// Mock ShareRepository
type MockShareRepository struct {
	mock.Mock
}

func (m *MockShareRepository) Upsert(ctx context.Context, share *entities.Share) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockShareRepository) GetByCredentialAndGrantee(ctx context.Context, credentialID, granteeID int64) (*entities.Share, error) {
	args := m.Called(ctx, credentialID, granteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Share), args.Error(1)
}

func (m *MockShareRepository) Delete(ctx context.Context, credentialID, granteeID int64) error {
	args := m.Called(ctx, credentialID, granteeID)
	return args.Error(0)
}

func (m *MockShareRepository) ListByCredential(ctx context.Context, credentialID int64) ([]*entities.Share, error) {
	args := m.Called(ctx, credentialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Share), args.Error(1)
}

func (m *MockShareRepository) DeleteByCredential(ctx context.Context, credentialID int64) error {
	args := m.Called(ctx, credentialID)
	return args.Error(0)
}

func (m *MockShareRepository) DeleteByGrantee(ctx context.Context, granteeID int64) error {
	args := m.Called(ctx, granteeID)
	return args.Error(0)
}

func (m *MockShareRepository) DeleteByOwner(ctx context.Context, ownerID int64) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

// Mock EkycRepository
type MockEkycRepository struct {
	mock.Mock
}

func (m *MockEkycRepository) Create(ctx context.Context, session *entities.EkycSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockEkycRepository) GetByID(ctx context.Context, id int64) (*entities.EkycSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EkycSession), args.Error(1)
}

func (m *MockEkycRepository) UpdateResult(ctx context.Context, session *entities.EkycSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockEkycRepository) GetLatestByUser(ctx context.Context, userID int64) (*entities.EkycSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EkycSession), args.Error(1)
}

func (m *MockEkycRepository) DeleteByUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockEkycRepository) ExpirePendingBefore(ctx context.Context, cutoff time.Time) ([]int64, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// Mock AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, entry *entities.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) Query(ctx context.Context, filter entities.AuditQueryFilter, limit, offset int) ([]*entities.AuditLog, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditRepository) NullifyActor(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// Mock LatestSessionCache
type MockSessionCache struct {
	mock.Mock
}

func (m *MockSessionCache) Get(ctx context.Context, userID int64) (*entities.EkycSession, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*entities.EkycSession), args.Bool(1), args.Error(2)
}

func (m *MockSessionCache) Set(ctx context.Context, userID int64, session *entities.EkycSession) error {
	args := m.Called(ctx, userID, session)
	return args.Error(0)
}

func (m *MockSessionCache) Invalidate(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
