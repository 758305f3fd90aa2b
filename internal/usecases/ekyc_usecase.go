package usecases

import (
	"context"

	"github.com/volatiletech/null/v8"

	"cred-vault.backend/internal/domain/entities"
	domainerrors "cred-vault.backend/internal/domain/errors"
	"cred-vault.backend/internal/domain/repositories"
	"cred-vault.backend/pkg/logger"
)

// LatestSessionCache caches the most recent eKYC session per user. The
// backing store stays the source of truth; cache failures are logged and
// the lookup falls through.
type LatestSessionCache interface {
	Get(ctx context.Context, userID int64) (*entities.EkycSession, bool, error)
	Set(ctx context.Context, userID int64, session *entities.EkycSession) error
	Invalidate(ctx context.Context, userID int64) error
}

// EkycUsecase implements the verification tracker. Sessions hold provider
// state verbatim; transition legality between statuses is not enforced.
type EkycUsecase struct {
	ekycRepo  repositories.EkycRepository
	userRepo  repositories.UserRepository
	auditRepo repositories.AuditRepository
	uow       repositories.UnitOfWork
	cache     LatestSessionCache
}

// NewEkycUsecase creates a new eKYC usecase. cache may be nil.
func NewEkycUsecase(
	ekycRepo repositories.EkycRepository,
	userRepo repositories.UserRepository,
	auditRepo repositories.AuditRepository,
	uow repositories.UnitOfWork,
	cache LatestSessionCache,
) *EkycUsecase {
	return &EkycUsecase{
		ekycRepo:  ekycRepo,
		userRepo:  userRepo,
		auditRepo: auditRepo,
		uow:       uow,
		cache:     cache,
	}
}

// Start opens a pending session for the user
func (u *EkycUsecase) Start(ctx context.Context, userID int64, provider string, meta entities.AuditMeta) (*entities.EkycSession, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	session := &entities.EkycSession{
		UserID: userID,
		Status: entities.EkycStatusPending,
	}
	if provider != "" {
		session.Provider = null.StringFrom(provider)
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.ekycRepo.Create(txCtx, session); err != nil {
			return err
		}
		return u.auditRepo.Create(txCtx, newAuditEntry(userID,
			entities.AuditActionEkycStart, "ekyc_session", session.ID, meta))
	})
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, userID)
	return session, nil
}

// RecordResult records a provider callback outcome on an existing session.
// Invoked asynchronously by the provider integration, so the audit entry
// carries no actor.
func (u *EkycUsecase) RecordResult(ctx context.Context, sessionID int64, input *entities.RecordEkycResultInput, meta entities.AuditMeta) (*entities.EkycSession, error) {
	status := entities.EkycStatus(input.Status)
	if !status.Valid() {
		return nil, domainerrors.ErrInvalidArgument
	}

	session, err := u.ekycRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Status = status
	if input.ReferenceID != "" {
		session.ReferenceID = null.StringFrom(input.ReferenceID)
	}
	if input.ResultJSON != "" {
		session.ResultJSON = null.StringFrom(input.ResultJSON)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.ekycRepo.UpdateResult(txCtx, session); err != nil {
			return err
		}
		return u.auditRepo.Create(txCtx, newAuditEntry(0,
			entities.AuditActionEkycResult, "ekyc_session", session.ID, meta))
	})
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, session.UserID)
	return u.ekycRepo.GetByID(ctx, sessionID)
}

// GetLatest returns the user's most recent session by creation time
func (u *EkycUsecase) GetLatest(ctx context.Context, userID int64) (*entities.EkycSession, error) {
	if u.cache != nil {
		session, hit, err := u.cache.Get(ctx, userID)
		if err != nil {
			logger.Warn(ctx, "ekyc cache read failed")
		} else if hit {
			return session, nil
		}
	}

	session, err := u.ekycRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, userID, session); err != nil {
			logger.Warn(ctx, "ekyc cache write failed")
		}
	}
	return session, nil
}

func (u *EkycUsecase) invalidate(ctx context.Context, userID int64) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Invalidate(ctx, userID); err != nil {
		logger.Warn(ctx, "ekyc cache invalidation failed")
	}
}
