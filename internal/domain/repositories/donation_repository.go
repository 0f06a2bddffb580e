package repositories

import (
	"context"

	"github.com/google/uuid"
	"garagesale.backend/internal/domain/entities"
)

// DonationRepository defines donation request data operations
type DonationRepository interface {
	Create(ctx context.Context, request *entities.DonationRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.DonationRequest, error)
	GetActiveByItemAndReceiver(ctx context.Context, itemID, receiverID uuid.UUID) (*entities.DonationRequest, error)
	Update(ctx context.Context, request *entities.DonationRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByItemPriority returns an item's requests ordered by priority
	// score descending (ties broken by request age). Display ranking relies
	// on this ordering and never re-sorts.
	ListByItemPriority(ctx context.Context, itemID uuid.UUID) ([]*entities.DonationRequest, error)
	ListByReceiver(ctx context.Context, receiverID uuid.UUID) ([]*entities.DonationRequest, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*entities.DonationRequest, error)
	CountByStatus(ctx context.Context, status entities.DonationStatus) (int64, error)
}

// PhotoProofRepository defines proof-of-receipt data operations
type PhotoProofRepository interface {
	Create(ctx context.Context, proof *entities.PhotoProof) error
	GetByDonationID(ctx context.Context, donationID uuid.UUID) (*entities.PhotoProof, error)
	Update(ctx context.Context, proof *entities.PhotoProof) error
}
