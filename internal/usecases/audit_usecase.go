package usecases

import (
	"context"

	"cred-vault.backend/internal/domain/entities"
	domainerrors "cred-vault.backend/internal/domain/errors"
	"cred-vault.backend/internal/domain/repositories"
	"cred-vault.backend/pkg/utils"
)

// AuditUsecase exposes the audit trail to collaborators: direct appends for
// events this core does not instrument itself (authentication events), and
// paged queries over the log.
type AuditUsecase struct {
	auditRepo repositories.AuditRepository
}

// NewAuditUsecase creates a new audit usecase
func NewAuditUsecase(auditRepo repositories.AuditRepository) *AuditUsecase {
	return &AuditUsecase{auditRepo: auditRepo}
}

// Append writes one entry. Rejects only on a missing action; semantic checks
// beyond that would risk blocking the operation being instrumented.
func (u *AuditUsecase) Append(ctx context.Context, actorID int64, action, resourceType string, resourceID int64, meta entities.AuditMeta) (*entities.AuditLog, error) {
	if action == "" {
		return nil, domainerrors.ErrInvalidArgument
	}

	entry := newAuditEntry(actorID, action, resourceType, resourceID, meta)
	if err := u.auditRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Query returns entries newest first with pagination metadata
func (u *AuditUsecase) Query(ctx context.Context, filter entities.AuditQueryFilter, page, limit int) ([]*entities.AuditLog, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)

	entries, total, err := u.auditRepo.Query(ctx, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return entries, utils.CalculateMeta(total, params.Page, params.Limit), nil
}
