package models

import (
	"time"
)

type Share struct {
	ID               int64      `gorm:"primaryKey;autoIncrement"`
	CredentialID     int64      `gorm:"not null;index:idx_shares_credential_id;uniqueIndex:idx_shares_credential_grantee"`
	SharedWithUserID int64      `gorm:"not null;index:idx_shares_shared_with_user_id;uniqueIndex:idx_shares_credential_grantee"`
	Permission       string     `gorm:"type:varchar(50);not null;default:'read'"`
	ExpiresAt        *time.Time `gorm:"type:timestamp"`
	CreatedAt        time.Time

	// Associations
	Credential Credential `gorm:"foreignKey:CredentialID;constraint:OnDelete:CASCADE"`
	SharedWith User       `gorm:"foreignKey:SharedWithUserID;constraint:OnDelete:CASCADE"`
}
