package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationRequest struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ItemID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReceiverID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	DonorID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	Message         string     `gorm:"type:varchar(500)"`
	Status          string     `gorm:"type:varchar(20);not null;default:'Requested';index"`
	PriorityScore   int        `gorm:"not null;default:0"`
	MeetingDate     *time.Time `gorm:"type:timestamp"`
	MeetingLocation string     `gorm:"type:varchar(200)"`
	RejectionReason string     `gorm:"type:varchar(500)"`
	CompletedAt     *time.Time `gorm:"type:timestamp"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
