package models

import (
	"time"
)

type User struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	Username     *string `gorm:"type:varchar(100);uniqueIndex:idx_users_username"`
	PasswordHash *string `gorm:"type:varchar(255)"`
	IsActive     bool    `gorm:"not null;default:true"`
	IsAdmin      bool    `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
