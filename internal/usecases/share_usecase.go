package usecases

import (
	"context"

	"github.com/volatiletech/null/v8"

	"cred-vault.backend/internal/domain/entities"
	domainerrors "cred-vault.backend/internal/domain/errors"
	"cred-vault.backend/internal/domain/repositories"
)

// ShareUsecase implements the share ledger: owner-granted, time-bounded,
// permissioned access to credentials. One row per (credential, grantee);
// regranting replaces the existing grant.
type ShareUsecase struct {
	shareRepo      repositories.ShareRepository
	credentialRepo repositories.CredentialRepository
	userRepo       repositories.UserRepository
	auditRepo      repositories.AuditRepository
	uow            repositories.UnitOfWork
	clock          repositories.Clock
}

// NewShareUsecase creates a new share usecase
func NewShareUsecase(
	shareRepo repositories.ShareRepository,
	credentialRepo repositories.CredentialRepository,
	userRepo repositories.UserRepository,
	auditRepo repositories.AuditRepository,
	uow repositories.UnitOfWork,
	clock repositories.Clock,
) *ShareUsecase {
	return &ShareUsecase{
		shareRepo:      shareRepo,
		credentialRepo: credentialRepo,
		userRepo:       userRepo,
		auditRepo:      auditRepo,
		uow:            uow,
		clock:          clock,
	}
}

// Grant creates or replaces the share for (credential, grantee)
func (u *ShareUsecase) Grant(ctx context.Context, credentialID, ownerID int64, input *entities.GrantShareInput, meta entities.AuditMeta) (*entities.Share, error) {
	credential, err := u.credentialRepo.GetByID(ctx, credentialID)
	if err != nil {
		return nil, err
	}
	if credential.UserID != ownerID {
		return nil, domainerrors.ErrPermissionDenied
	}
	if input.GranteeID == ownerID {
		return nil, domainerrors.ErrInvalidArgument
	}

	permission := entities.SharePermission(input.Permission)
	if permission == "" {
		permission = entities.SharePermissionRead
	}
	if !permission.Valid() {
		return nil, domainerrors.ErrInvalidArgument
	}

	if _, err := u.userRepo.GetByID(ctx, input.GranteeID); err != nil {
		return nil, err
	}

	share := &entities.Share{
		CredentialID: credentialID,
		GranteeID:    input.GranteeID,
		Permission:   permission,
		ExpiresAt:    null.TimeFromPtr(input.ExpiresAt),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.shareRepo.Upsert(txCtx, share); err != nil {
			return err
		}
		return u.auditRepo.Create(txCtx, newAuditEntry(ownerID,
			entities.AuditActionShareGrant, "share", share.ID, meta))
	})
	if err != nil {
		return nil, err
	}

	share.Effective = share.EffectiveAt(u.clock.Now())
	return share, nil
}

// Revoke deletes the share for (credential, grantee)
func (u *ShareUsecase) Revoke(ctx context.Context, credentialID, ownerID, granteeID int64, meta entities.AuditMeta) error {
	credential, err := u.credentialRepo.GetByID(ctx, credentialID)
	if err != nil {
		return err
	}
	if credential.UserID != ownerID {
		return domainerrors.ErrPermissionDenied
	}

	share, err := u.shareRepo.GetByCredentialAndGrantee(ctx, credentialID, granteeID)
	if err != nil {
		return err
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.shareRepo.Delete(txCtx, credentialID, granteeID); err != nil {
			return err
		}
		return u.auditRepo.Create(txCtx, newAuditEntry(ownerID,
			entities.AuditActionShareRevoke, "share", share.ID, meta))
	})
}

// IsEffective reports whether the share grants access right now. Pure check;
// the sole gate used by the credential store's permission path.
func (u *ShareUsecase) IsEffective(share *entities.Share) bool {
	return share.EffectiveAt(u.clock.Now())
}

// ListForCredential returns all shares on an owned credential, expired rows
// included, each tagged with effectiveness computed against one clock reading
func (u *ShareUsecase) ListForCredential(ctx context.Context, credentialID, ownerID int64) ([]*entities.Share, error) {
	credential, err := u.credentialRepo.GetByID(ctx, credentialID)
	if err != nil {
		return nil, err
	}
	if credential.UserID != ownerID {
		return nil, domainerrors.ErrPermissionDenied
	}

	shares, err := u.shareRepo.ListByCredential(ctx, credentialID)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	for _, s := range shares {
		s.Effective = s.EffectiveAt(now)
	}
	return shares, nil
}
