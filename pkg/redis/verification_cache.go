package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"cred-vault.backend/internal/domain/entities"
)

// VerificationCache caches the latest eKYC session per user. Entries are
// short-lived; the database remains the source of truth and writers
// invalidate on every session mutation.
type VerificationCache struct {
	ttl time.Duration
}

// NewVerificationCache creates a new verification cache
func NewVerificationCache(ttl time.Duration) *VerificationCache {
	return &VerificationCache{ttl: ttl}
}

func verificationKey(userID int64) string {
	return "ekyc:latest:" + strconv.FormatInt(userID, 10)
}

// Get returns the cached session and whether the lookup hit
func (c *VerificationCache) Get(ctx context.Context, userID int64) (*entities.EkycSession, bool, error) {
	raw, err := Get(ctx, verificationKey(userID))
	if err != nil {
		if IsNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var session entities.EkycSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		// Unreadable payload: treat as a miss and let the writer replace it.
		return nil, false, nil
	}
	return &session, true, nil
}

// Set stores the session under the user's key
func (c *VerificationCache) Set(ctx context.Context, userID int64, session *entities.EkycSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return Set(ctx, verificationKey(userID), raw, c.ttl)
}

// Invalidate drops the user's cached session
func (c *VerificationCache) Invalidate(ctx context.Context, userID int64) error {
	return Del(ctx, verificationKey(userID))
}
