package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	SenderID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemID      *uuid.UUID `gorm:"type:uuid;index"`
	Content     string     `gorm:"type:text;not null"`
	IsRead      bool       `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
