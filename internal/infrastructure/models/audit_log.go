package models

import (
	"time"
)

type AuditLog struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	UserID       *int64  `gorm:"index:idx_audit_user_id"`
	Action       string  `gorm:"type:varchar(255);not null"`
	ResourceType *string `gorm:"type:varchar(100)"`
	ResourceID   *int64
	IPAddress    *string   `gorm:"type:varchar(100)"`
	UserAgent    *string   `gorm:"type:varchar(512)"`
	CreatedAt    time.Time `gorm:"index:idx_audit_created_at"`

	// ResourceID is intentionally not a foreign key: it may point at any
	// entity family and must never block or cascade from it.
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}
