package repositories

import (
	"context"
	"time"
)

// UnitOfWork defines the interface for atomic operations. Every mutation
// that spans more than one entity (a data change plus its audit entry, or a
// cascade) runs inside Do so partial application is never observable.
type UnitOfWork interface {
	// Do executes the given function within a transaction scope
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock supplies the current time for expiry checks. Injected rather than
// read ambiently so effectiveness checks stay deterministic in tests, and
// read once per operation so a share cannot flip effective mid-operation.
type Clock interface {
	Now() time.Time
}
