package usecases

import (
	"context"

	"github.com/volatiletech/null/v8"

	"cred-vault.backend/internal/domain/entities"
	domainerrors "cred-vault.backend/internal/domain/errors"
	"cred-vault.backend/internal/domain/repositories"
)

// UserUsecase implements the thin identity store: account records with
// soft-disable and a full cascade on removal. Authentication itself is an
// external collaborator.
type UserUsecase struct {
	userRepo       repositories.UserRepository
	credentialRepo repositories.CredentialRepository
	shareRepo      repositories.ShareRepository
	ekycRepo       repositories.EkycRepository
	auditRepo      repositories.AuditRepository
	uow            repositories.UnitOfWork
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(
	userRepo repositories.UserRepository,
	credentialRepo repositories.CredentialRepository,
	shareRepo repositories.ShareRepository,
	ekycRepo repositories.EkycRepository,
	auditRepo repositories.AuditRepository,
	uow repositories.UnitOfWork,
) *UserUsecase {
	return &UserUsecase{
		userRepo:       userRepo,
		credentialRepo: credentialRepo,
		shareRepo:      shareRepo,
		ekycRepo:       ekycRepo,
		auditRepo:      auditRepo,
		uow:            uow,
	}
}

// Register creates an account record. Email and username uniqueness is
// enforced atomically at insert time by the store.
func (u *UserUsecase) Register(ctx context.Context, input *entities.RegisterUserInput) (*entities.User, error) {
	if input.Email == "" {
		return nil, domainerrors.ErrInvalidArgument
	}

	user := &entities.User{
		Email:    input.Email,
		IsActive: true,
	}
	if input.Username != "" {
		user.Username = null.StringFrom(input.Username)
	}
	if input.PasswordHash != "" {
		user.PasswordHash = null.StringFrom(input.PasswordHash)
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID gets a user by ID
func (u *UserUsecase) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// GetByEmail gets a user by email
func (u *UserUsecase) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return u.userRepo.GetByEmail(ctx, email)
}

// Deactivate soft-disables the account; the row and everything it owns stay
func (u *UserUsecase) Deactivate(ctx context.Context, userID, actorID int64, meta entities.AuditMeta) error {
	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.SetActive(txCtx, userID, false); err != nil {
			return err
		}
		return u.auditRepo.Create(txCtx, newAuditEntry(actorID,
			entities.AuditActionUserDeactivate, "user", userID, meta))
	})
}

// Delete removes the account with its full cascade in one transaction:
// shares granted to the user, shares on the user's credentials, the
// credentials, the eKYC sessions, then the row. Audit entries the user
// authored stay with the actor reference nulled; the closing entry records
// a null actor because the account is gone.
func (u *UserUsecase) Delete(ctx context.Context, userID int64, meta entities.AuditMeta) error {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.shareRepo.DeleteByGrantee(txCtx, userID); err != nil {
			return err
		}
		if err := u.shareRepo.DeleteByOwner(txCtx, userID); err != nil {
			return err
		}
		if _, err := u.credentialRepo.DeleteByUser(txCtx, userID); err != nil {
			return err
		}
		if err := u.ekycRepo.DeleteByUser(txCtx, userID); err != nil {
			return err
		}
		if err := u.auditRepo.NullifyActor(txCtx, userID); err != nil {
			return err
		}
		if err := u.userRepo.Delete(txCtx, userID); err != nil {
			return err
		}
		return u.auditRepo.Create(txCtx, newAuditEntry(0,
			entities.AuditActionUserDelete, "user", userID, meta))
	})
}
