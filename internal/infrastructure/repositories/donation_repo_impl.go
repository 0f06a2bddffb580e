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

// DonationRepository implements donation request data operations
type DonationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

// Create creates a new donation request
func (r *DonationRepository) Create(ctx context.Context, request *entities.DonationRequest) error {
	m := donationToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	request.ID = m.ID
	return nil
}

// GetByID gets a donation request by ID
func (r *DonationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.DonationRequest, error) {
	var m models.DonationRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return donationToEntity(&m), nil
}

// GetActiveByItemAndReceiver finds a receiver's non-terminal request for an
// item, used to block duplicate requests.
func (r *DonationRepository) GetActiveByItemAndReceiver(ctx context.Context, itemID, receiverID uuid.UUID) (*entities.DonationRequest, error) {
	var m models.DonationRequest
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND receiver_id = ?", itemID, receiverID).
		Where("status NOT IN ?", []string{
			string(entities.DonationCompleted),
			string(entities.DonationRejected),
		}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return donationToEntity(&m), nil
}

// Update persists status and lifecycle fields of a request. It joins an
// open unit-of-work transaction when one is in the context.
func (r *DonationRepository) Update(ctx context.Context, request *entities.DonationRequest) error {
	updates := map[string]interface{}{
		"status":           string(request.Status),
		"meeting_location": request.MeetingLocation,
		"rejection_reason": request.RejectionReason,
		"updated_at":       time.Now(),
	}
	if request.MeetingDate.Valid {
		updates["meeting_date"] = request.MeetingDate.Time
	}
	if request.CompletedAt.Valid {
		updates["completed_at"] = request.CompletedAt.Time
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.DonationRequest{}).
		Where("id = ?", request.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft deletes a request (receiver cancellation)
func (r *DonationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DonationRequest{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByItemPriority returns an item's requests ordered by snapshotted
// priority score descending, oldest first within a score.
func (r *DonationRepository) ListByItemPriority(ctx context.Context, itemID uuid.UUID) ([]*entities.DonationRequest, error) {
	var requestModels []models.DonationRequest
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("priority_score DESC, created_at ASC").
		Find(&requestModels).Error
	if err != nil {
		return nil, err
	}
	return donationsToEntities(requestModels), nil
}

// ListByReceiver lists a receiver's requests, newest first
func (r *DonationRepository) ListByReceiver(ctx context.Context, receiverID uuid.UUID) ([]*entities.DonationRequest, error) {
	var requestModels []models.DonationRequest
	err := r.db.WithContext(ctx).
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&requestModels).Error
	if err != nil {
		return nil, err
	}
	return donationsToEntities(requestModels), nil
}

// ListByDonor lists requests against a donor's items, newest first
func (r *DonationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*entities.DonationRequest, error) {
	var requestModels []models.DonationRequest
	err := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&requestModels).Error
	if err != nil {
		return nil, err
	}
	return donationsToEntities(requestModels), nil
}

// CountByStatus returns the number of requests in a given state
func (r *DonationRepository) CountByStatus(ctx context.Context, status entities.DonationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DonationRequest{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, err
}

func donationToModel(e *entities.DonationRequest) *models.DonationRequest {
	return &models.DonationRequest{
		ID:              e.ID,
		ItemID:          e.ItemID,
		ReceiverID:      e.ReceiverID,
		DonorID:         e.DonorID,
		Message:         e.Message,
		Status:          string(e.Status),
		PriorityScore:   e.PriorityScore,
		MeetingDate:     e.MeetingDate.Ptr(),
		MeetingLocation: e.MeetingLocation,
		RejectionReason: e.RejectionReason,
		CompletedAt:     e.CompletedAt.Ptr(),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func donationToEntity(m *models.DonationRequest) *entities.DonationRequest {
	return &entities.DonationRequest{
		ID:              m.ID,
		ItemID:          m.ItemID,
		ReceiverID:      m.ReceiverID,
		DonorID:         m.DonorID,
		Message:         m.Message,
		Status:          entities.DonationStatus(m.Status),
		PriorityScore:   m.PriorityScore,
		MeetingDate:     null.TimeFromPtr(m.MeetingDate),
		MeetingLocation: m.MeetingLocation,
		RejectionReason: m.RejectionReason,
		CompletedAt:     null.TimeFromPtr(m.CompletedAt),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func donationsToEntities(requestModels []models.DonationRequest) []*entities.DonationRequest {
	requests := make([]*entities.DonationRequest, 0, len(requestModels))
	for i := range requestModels {
		requests = append(requests, donationToEntity(&requestModels[i]))
	}
	return requests
}
