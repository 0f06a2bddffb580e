package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PhotoProof struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	DonationID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	UploaderID      uuid.UUID  `gorm:"type:uuid;not null"`
	ImageKey        string     `gorm:"type:varchar(255);not null"`
	Message         string     `gorm:"type:varchar(500)"`
	Status          string     `gorm:"type:varchar(20);not null;default:'Pending'"`
	RejectionReason string     `gorm:"type:varchar(500)"`
	UploadedAt      time.Time  `gorm:"not null"`
	VerifiedAt      *time.Time `gorm:"type:timestamp"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
