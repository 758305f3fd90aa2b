package usecases

import (
	"context"

	"github.com/volatiletech/null/v8"

	"cred-vault.backend/internal/domain/entities"
	domainerrors "cred-vault.backend/internal/domain/errors"
	"cred-vault.backend/internal/domain/repositories"
)

// CredentialUsecase implements the credential store contract: opaque
// ciphertext records with owner/share access control, every mutation audited
// in the same transaction.
type CredentialUsecase struct {
	credentialRepo repositories.CredentialRepository
	shareRepo      repositories.ShareRepository
	userRepo       repositories.UserRepository
	auditRepo      repositories.AuditRepository
	uow            repositories.UnitOfWork
	clock          repositories.Clock
	auditReads     bool
}

// NewCredentialUsecase creates a new credential usecase. auditReads controls
// whether successful reads append an audit entry.
func NewCredentialUsecase(
	credentialRepo repositories.CredentialRepository,
	shareRepo repositories.ShareRepository,
	userRepo repositories.UserRepository,
	auditRepo repositories.AuditRepository,
	uow repositories.UnitOfWork,
	clock repositories.Clock,
	auditReads bool,
) *CredentialUsecase {
	return &CredentialUsecase{
		credentialRepo: credentialRepo,
		shareRepo:      shareRepo,
		userRepo:       userRepo,
		auditRepo:      auditRepo,
		uow:            uow,
		clock:          clock,
		auditReads:     auditReads,
	}
}

// Create stores a new credential for an active owner
func (u *CredentialUsecase) Create(ctx context.Context, ownerID int64, input *entities.CreateCredentialInput, meta entities.AuditMeta) (*entities.Credential, error) {
	if input.Title == "" || len(input.Data) == 0 {
		return nil, domainerrors.ErrInvalidArgument
	}

	owner, err := u.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !owner.IsActive {
		return nil, domainerrors.ErrNotFound
	}

	credential := &entities.Credential{
		UserID: ownerID,
		Title:  input.Title,
		Data:   input.Data,
		IV:     input.IV,
	}
	if input.Description != "" {
		credential.Description = null.StringFrom(input.Description)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.credentialRepo.Create(txCtx, credential); err != nil {
			return err
		}
		return u.auditRepo.Create(txCtx, newAuditEntry(ownerID,
			entities.AuditActionCredentialCreate, "credential", credential.ID, meta))
	})
	if err != nil {
		return nil, err
	}
	return credential, nil
}

// Get returns the credential if the requester is the owner or holds an
// effective share on it
func (u *CredentialUsecase) Get(ctx context.Context, credentialID, requesterID int64, meta entities.AuditMeta) (*entities.Credential, error) {
	credential, err := u.credentialRepo.GetByID(ctx, credentialID)
	if err != nil {
		return nil, err
	}

	if credential.UserID != requesterID {
		if _, err := u.effectiveShare(ctx, credentialID, requesterID); err != nil {
			return nil, err
		}
	}

	if u.auditReads {
		err = u.uow.Do(ctx, func(txCtx context.Context) error {
			return u.auditRepo.Create(txCtx, newAuditEntry(requesterID,
				entities.AuditActionCredentialRead, "credential", credentialID, meta))
		})
		if err != nil {
			return nil, err
		}
	}
	return credential, nil
}

// Update replaces the ciphertext; requester must be the owner or hold an
// effective write share
func (u *CredentialUsecase) Update(ctx context.Context, credentialID, requesterID int64, input *entities.UpdateCredentialInput, meta entities.AuditMeta) (*entities.Credential, error) {
	if len(input.Data) == 0 {
		return nil, domainerrors.ErrInvalidArgument
	}

	credential, err := u.credentialRepo.GetByID(ctx, credentialID)
	if err != nil {
		return nil, err
	}

	if credential.UserID != requesterID {
		share, err := u.effectiveShare(ctx, credentialID, requesterID)
		if err != nil {
			return nil, err
		}
		if share.Permission != entities.SharePermissionWrite {
			return nil, domainerrors.ErrPermissionDenied
		}
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.credentialRepo.UpdateData(txCtx, credentialID, input.Data, input.IV); err != nil {
			return err
		}
		return u.auditRepo.Create(txCtx, newAuditEntry(requesterID,
			entities.AuditActionCredentialUpdate, "credential", credentialID, meta))
	})
	if err != nil {
		return nil, err
	}

	return u.credentialRepo.GetByID(ctx, credentialID)
}

// Delete removes an owned credential and cascades onto its shares
func (u *CredentialUsecase) Delete(ctx context.Context, credentialID, requesterID int64, meta entities.AuditMeta) error {
	credential, err := u.credentialRepo.GetByID(ctx, credentialID)
	if err != nil {
		return err
	}
	if credential.UserID != requesterID {
		return domainerrors.ErrPermissionDenied
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.shareRepo.DeleteByCredential(txCtx, credentialID); err != nil {
			return err
		}
		if err := u.credentialRepo.Delete(txCtx, credentialID); err != nil {
			return err
		}
		return u.auditRepo.Create(txCtx, newAuditEntry(requesterID,
			entities.AuditActionCredentialDelete, "credential", credentialID, meta))
	})
}

// ListForUser returns owned plus effectively shared credentials, distinct,
// ordered by id
func (u *CredentialUsecase) ListForUser(ctx context.Context, userID int64) ([]*entities.Credential, error) {
	return u.credentialRepo.ListForUser(ctx, userID, u.clock.Now())
}

// effectiveShare resolves the requester's share on the credential. A missing
// or expired share is a permission failure, not a not-found: the caller has
// no standing to learn which.
func (u *CredentialUsecase) effectiveShare(ctx context.Context, credentialID, requesterID int64) (*entities.Share, error) {
	share, err := u.shareRepo.GetByCredentialAndGrantee(ctx, credentialID, requesterID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.ErrPermissionDenied
		}
		return nil, err
	}
	if !share.EffectiveAt(u.clock.Now()) {
		return nil, domainerrors.ErrPermissionDenied
	}
	return share, nil
}
