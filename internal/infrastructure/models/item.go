package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Item struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(120);not null"`
	Description string     `gorm:"type:text"`
	ItemType    string     `gorm:"type:varchar(20);not null;index"`
	Category    string     `gorm:"type:varchar(50);not null;index"`
	Condition   string     `gorm:"type:varchar(50);not null"`
	Location    string     `gorm:"type:varchar(200)"`
	ImageKeys   string     `gorm:"type:text"` // JSON-encoded list of object keys
	AskingPrice *int64     `gorm:"type:bigint"`
	Status      string     `gorm:"type:varchar(20);not null;default:'Available'"`
	ExpiresAt   *time.Time `gorm:"type:timestamp;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
