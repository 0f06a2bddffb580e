package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/infrastructure/models"
)

// PhotoProofRepository implements proof-of-receipt data operations
type PhotoProofRepository struct {
	db *gorm.DB
}

// NewPhotoProofRepository creates a new photo proof repository
func NewPhotoProofRepository(db *gorm.DB) *PhotoProofRepository {
	return &PhotoProofRepository{db: db}
}

// Create stores a newly uploaded proof. The donation ID carries a unique
// index, so a second upload for the same donation fails at the database.
func (r *PhotoProofRepository) Create(ctx context.Context, proof *entities.PhotoProof) error {
	m := proofToModel(proof)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	proof.ID = m.ID
	return nil
}

// GetByDonationID gets the proof attached to a donation request
func (r *PhotoProofRepository) GetByDonationID(ctx context.Context, donationID uuid.UUID) (*entities.PhotoProof, error) {
	var m models.PhotoProof
	if err := r.db.WithContext(ctx).Where("donation_id = ?", donationID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return proofToEntity(&m), nil
}

// Update persists the donor's verification outcome
func (r *PhotoProofRepository) Update(ctx context.Context, proof *entities.PhotoProof) error {
	updates := map[string]interface{}{
		"status":           string(proof.Status),
		"rejection_reason": proof.RejectionReason,
		"updated_at":       time.Now(),
	}
	if proof.VerifiedAt.Valid {
		updates["verified_at"] = proof.VerifiedAt.Time
	}

	result := r.db.WithContext(ctx).Model(&models.PhotoProof{}).
		Where("id = ?", proof.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func proofToModel(e *entities.PhotoProof) *models.PhotoProof {
	return &models.PhotoProof{
		ID:              e.ID,
		DonationID:      e.DonationID,
		UploaderID:      e.UploaderID,
		ImageKey:        e.ImageKey,
		Message:         e.Message,
		Status:          string(e.Status),
		RejectionReason: e.RejectionReason,
		UploadedAt:      e.UploadedAt,
		VerifiedAt:      e.VerifiedAt.Ptr(),
	}
}

func proofToEntity(m *models.PhotoProof) *entities.PhotoProof {
	return &entities.PhotoProof{
		ID:              m.ID,
		DonationID:      m.DonationID,
		UploaderID:      m.UploaderID,
		ImageKey:        m.ImageKey,
		Message:         m.Message,
		Status:          entities.ProofStatus(m.Status),
		RejectionReason: m.RejectionReason,
		UploadedAt:      m.UploadedAt,
		VerifiedAt:      null.TimeFromPtr(m.VerifiedAt),
	}
}
