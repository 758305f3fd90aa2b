package models

import (
	"time"
)

type EkycSession struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	UserID      int64   `gorm:"not null;index:idx_ekyc_user_id"`
	Status      string  `gorm:"type:varchar(50);not null;default:'pending'"`
	Provider    *string `gorm:"type:varchar(100)"`
	ReferenceID *string `gorm:"type:varchar(255)"`
	ResultJSON  *string `gorm:"column:result_json;type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
