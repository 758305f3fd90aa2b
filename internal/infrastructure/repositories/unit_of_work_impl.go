package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domainerrors "cred-vault.backend/internal/domain/errors"
	domainRepos "cred-vault.backend/internal/domain/repositories"
)

type contextKey string

const (
	txKey contextKey = "tx_db"
)

// UnitOfWorkImpl implements UnitOfWork using GORM
type UnitOfWorkImpl struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new UnitOfWork
func NewUnitOfWork(db *gorm.DB) domainRepos.UnitOfWork {
	return &UnitOfWorkImpl{db: db}
}

// Do executes the given function within a transaction scope. The transaction
// handle travels in the context; repositories in this package pick it up via
// GetDB, so a mutation and its audit entry commit or roll back together.
func (u *UnitOfWorkImpl) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		// Already inside a transaction; join it.
		return fn(ctx)
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("%w: begin transaction: %v", domainerrors.ErrStorageFailure, tx.Error)
	}

	txCtx := context.WithValue(ctx, txKey, tx)

	if err := fn(txCtx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("%w: commit transaction: %v", domainerrors.ErrStorageFailure, err)
	}

	return nil
}

// GetDB extracts the transaction DB from context if present, otherwise
// returns the fallback connection. Helper for repositories in this package.
func GetDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
