package model

import (
	"time"

	"github.com/google/uuid"
)

// LinkModel mirrors the 'links' table. OwnerID references accounts.id with ON DELETE CASCADE.
type LinkModel struct {
	Code      string    `gorm:"type:varchar(32);primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index:links_owner_id_created_at_idx,priority:1"`
	URL       string    `gorm:"type:text;uniqueIndex:links_url_key;not null"`
	CreatedAt time.Time `gorm:"index:links_owner_id_created_at_idx,priority:2"`
}

// TableName explicitly sets the table name for GORM.
func (LinkModel) TableName() string {
	return "links"
}
