package models

import (
	"time"
)

type Credential struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	UserID      int64   `gorm:"not null;index:idx_credentials_user_id"`
	Title       string  `gorm:"type:varchar(255);not null"`
	Description *string `gorm:"type:text"`
	Data        []byte  `gorm:"column:data_encrypted;not null"`
	IV          []byte  `gorm:"column:iv"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
