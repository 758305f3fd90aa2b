package jobs

import (
	"context"
	"log"
	"time"

	"cred-vault.backend/internal/domain/entities"
	"cred-vault.backend/internal/domain/repositories"
)

// EkycSessionExpiryJob sweeps pending eKYC sessions that never received a
// provider result and marks them expired. Each swept session gets an audit
// entry with no actor, committed atomically with the status change.
type EkycSessionExpiryJob struct {
	ekycRepo  repositories.EkycRepository
	auditRepo repositories.AuditRepository
	uow       repositories.UnitOfWork
	maxAge    time.Duration
	interval  time.Duration
	stop      chan struct{}
}

func NewEkycSessionExpiryJob(
	ekycRepo repositories.EkycRepository,
	auditRepo repositories.AuditRepository,
	uow repositories.UnitOfWork,
	maxAge time.Duration,
) *EkycSessionExpiryJob {
	return &EkycSessionExpiryJob{
		ekycRepo:  ekycRepo,
		auditRepo: auditRepo,
		uow:       uow,
		maxAge:    maxAge,
		interval:  time.Minute,
		stop:      make(chan struct{}),
	}
}

func (j *EkycSessionExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting eKYC session expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ eKYC session expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ eKYC session expiry job stopped")
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

func (j *EkycSessionExpiryJob) Stop() {
	close(j.stop)
}

// Sweep runs one expiry pass
func (j *EkycSessionExpiryJob) Sweep(ctx context.Context) {
	cutoff := time.Now().Add(-j.maxAge)

	err := j.uow.Do(ctx, func(txCtx context.Context) error {
		ids, err := j.ekycRepo.ExpirePendingBefore(txCtx, cutoff)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		log.Printf("🔄 Expiring %d stale eKYC sessions...", len(ids))
		for _, id := range ids {
			entry := &entities.AuditLog{Action: entities.AuditActionEkycExpire}
			entry.ResourceType.SetValid("ekyc_session")
			entry.ResourceID.SetValid(id)
			if err := j.auditRepo.Create(txCtx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ Error expiring eKYC sessions: %v", err)
	}
}
