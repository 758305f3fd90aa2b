package usecases

import (
	"time"

	"cred-vault.backend/internal/domain/repositories"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystemClock returns the wall clock. Tests substitute a fixed clock so
// expiry checks are deterministic.
func NewSystemClock() repositories.Clock { return systemClock{} }
