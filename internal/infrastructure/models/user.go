package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email                  string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name                   string     `gorm:"type:varchar(100);not null"`
	PasswordHash           string     `gorm:"type:varchar(255);not null"`
	Role                   string     `gorm:"type:varchar(50);not null;default:'user'"`
	IsActive               bool       `gorm:"not null;default:true"`
	VerificationStatus     string     `gorm:"type:varchar(50);not null;default:'Unverified'"`
	PriorityLevel          int        `gorm:"not null;default:0"`
	PriorityScore          int        `gorm:"not null;default:0"`
	IsSingleMother         bool       `gorm:"not null;default:false"`
	IsDisabled             bool       `gorm:"not null;default:false"`
	IsOrphanage            bool       `gorm:"not null;default:false"`
	FamilySize             int        `gorm:"not null;default:0"`
	MonthlyIncomeRange     string     `gorm:"type:varchar(20)"`
	ItemsReceivedThisMonth int        `gorm:"not null;default:0"`
	EcoScore               int        `gorm:"not null;default:0"`
	CNIC                   string     `gorm:"type:varchar(20)"`
	IDFrontKey             string     `gorm:"type:varchar(255)"`
	IDBackKey              string     `gorm:"type:varchar(255)"`
	SelfieWithIDKey        string     `gorm:"type:varchar(255)"`
	NeedsDescription       string     `gorm:"type:text"`
	RejectionReason        string     `gorm:"type:varchar(500)"`
	VerifiedAt             *time.Time `gorm:"type:timestamp"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              gorm.DeletedAt `gorm:"index"`
}
