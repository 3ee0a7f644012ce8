// Package model holds the GORM persistence models. They mirror the tables created by the
// embedded migrations and never leave the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. IDs are UUIDv7 generated by the application.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex:accounts_email_key;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
