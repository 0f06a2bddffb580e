package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/domain/repositories"
	"garagesale.backend/internal/infrastructure/storage"
	"garagesale.backend/pkg/logger"
)

// proofURLExpiry bounds presigned proof image links
const proofURLExpiry = time.Hour

// PhotoProofUsecase handles the proof-of-receipt flow: the receiver uploads
// a photo after the meeting, the donor approves or rejects it, and approval
// completes the donation.
type PhotoProofUsecase struct {
	proofRepo    repositories.PhotoProofRepository
	donationRepo repositories.DonationRepository
	donations    *DonationUsecase
	store        storage.ObjectStore
}

// NewPhotoProofUsecase creates a new photo proof usecase
func NewPhotoProofUsecase(
	proofRepo repositories.PhotoProofRepository,
	donationRepo repositories.DonationRepository,
	donations *DonationUsecase,
	store storage.ObjectStore,
) *PhotoProofUsecase {
	return &PhotoProofUsecase{
		proofRepo:    proofRepo,
		donationRepo: donationRepo,
		donations:    donations,
		store:        store,
	}
}

// Upload validates and stores a proof photo for an accepted donation, then
// moves the request to ProofSubmitted. Validation runs before any storage
// work so oversized or non-image files are rejected cheaply.
func (u *PhotoProofUsecase) Upload(ctx context.Context, donationID, uploaderID uuid.UUID, reader io.Reader, size int64, contentType, filename, message string) (*entities.PhotoProof, error) {
	if err := entities.ValidateProofUpload(size, contentType); err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	request, err := u.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if request.ReceiverID != uploaderID {
		return nil, domainerrors.ErrForbidden
	}
	if !entities.CanTransition(request.Status, entities.DonationProofSubmitted) {
		return nil, domainerrors.ErrInvalidTransition
	}

	if _, err := u.proofRepo.GetByDonationID(ctx, donationID); err == nil {
		return nil, domainerrors.Conflict("a proof was already submitted for this donation")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	key := fmt.Sprintf("proofs/%s/%s%s", donationID, uuid.New(), path.Ext(filename))
	if err := u.store.Upload(ctx, key, reader, size, contentType); err != nil {
		return nil, err
	}

	proof := &entities.PhotoProof{
		ID:         uuid.New(),
		DonationID: donationID,
		UploaderID: uploaderID,
		ImageKey:   key,
		Message:    message,
		Status:     entities.ProofPending,
		UploadedAt: time.Now(),
	}
	if err := u.proofRepo.Create(ctx, proof); err != nil {
		return nil, err
	}

	request.Status = entities.DonationProofSubmitted
	if err := u.donationRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	logger.Info(ctx, "proof submitted",
		zap.String("donation_id", donationID.String()),
		zap.String("proof_id", proof.ID.String()))
	return proof, nil
}

// Get returns the proof for a donation, visible to its donor, its receiver
// or an admin.
func (u *PhotoProofUsecase) Get(ctx context.Context, donationID, actorID uuid.UUID, actorRole entities.UserRole) (*entities.PhotoProof, error) {
	request, err := u.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if request.DonorID != actorID && request.ReceiverID != actorID && actorRole != entities.UserRoleAdmin {
		return nil, domainerrors.ErrForbidden
	}
	return u.proofRepo.GetByDonationID(ctx, donationID)
}

// ImageURL resolves a proof's object key to a presigned download URL
func (u *PhotoProofUsecase) ImageURL(ctx context.Context, proof *entities.PhotoProof) (string, error) {
	return u.store.PresignedGetURL(ctx, proof.ImageKey, proofURLExpiry)
}

// Verify records the donor's decision on a pending proof. Approval completes
// the donation; rejection requires a reason and ends the request as
// Rejected.
func (u *PhotoProofUsecase) Verify(ctx context.Context, donationID, actorID uuid.UUID, input *entities.VerifyProofInput) (*entities.PhotoProof, error) {
	request, err := u.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if request.DonorID != actorID {
		return nil, domainerrors.ErrForbidden
	}
	if request.Status != entities.DonationProofSubmitted {
		return nil, domainerrors.ErrInvalidTransition
	}

	proof, err := u.proofRepo.GetByDonationID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if proof.Status != entities.ProofPending {
		return nil, domainerrors.Conflict("proof was already reviewed")
	}

	switch input.Action {
	case "approve":
		proof.Status = entities.ProofApproved
		proof.VerifiedAt = null.TimeFrom(time.Now())
		if err := u.proofRepo.Update(ctx, proof); err != nil {
			return nil, err
		}
		if err := u.donations.Complete(ctx, request); err != nil {
			return nil, err
		}
	case "reject":
		reason := strings.TrimSpace(input.Reason)
		if reason == "" {
			return nil, domainerrors.BadRequest("rejection reason is required")
		}
		proof.Status = entities.ProofRejected
		proof.RejectionReason = reason
		proof.VerifiedAt = null.TimeFrom(time.Now())
		if err := u.proofRepo.Update(ctx, proof); err != nil {
			return nil, err
		}
		// the donation ends Rejected and the item is freed again
		if _, err := u.donations.Reject(ctx, donationID, actorID, &entities.RejectDonationInput{Reason: reason}); err != nil {
			return nil, err
		}
	default:
		return nil, domainerrors.BadRequest("action must be approve or reject")
	}

	logger.Info(ctx, "proof reviewed",
		zap.String("donation_id", donationID.String()),
		zap.String("action", input.Action))
	return proof, nil
}
