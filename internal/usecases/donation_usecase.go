package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/domain/repositories"
	"garagesale.backend/pkg/logger"
)

// ecoScorePerDonation is awarded to the donor when a donation completes
const ecoScorePerDonation = 10

// DonationUsecase handles the donation request lifecycle: gating, priority
// ranking, the accept/proof/complete state machine and monthly allotments.
type DonationUsecase struct {
	donationRepo repositories.DonationRepository
	itemRepo     repositories.ItemRepository
	userRepo     repositories.UserRepository
	uow          repositories.UnitOfWork
}

// NewDonationUsecase creates a new donation usecase
func NewDonationUsecase(
	donationRepo repositories.DonationRepository,
	itemRepo repositories.ItemRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
) *DonationUsecase {
	return &DonationUsecase{
		donationRepo: donationRepo,
		itemRepo:     itemRepo,
		userRepo:     userRepo,
		uow:          uow,
	}
}

// Request creates a donation request after running the full gate: the
// receiver must be verified, under their monthly allotment, not the item's
// owner, and without an active request for the same item. The receiver's
// priority score is snapshotted onto the request.
func (u *DonationUsecase) Request(ctx context.Context, itemID, receiverID uuid.UUID, input *entities.CreateDonationRequestInput) (*entities.DonationRequest, error) {
	receiver, err := u.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	if ok, reason := receiver.CanRequestDonation(); !ok {
		return nil, domainerrors.NewAppError(403, domainerrors.CodeNotVerified, "verification required to request donations: "+reason, domainerrors.ErrNotVerified)
	}

	if receiver.ItemsReceivedThisMonth >= entities.MonthlyItemLimit {
		return nil, domainerrors.ErrAllotmentExceeded
	}

	item, err := u.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.ItemType != entities.ItemTypeDonate {
		return nil, domainerrors.BadRequest("requests are only possible on donation listings")
	}
	if item.Status != entities.ItemStatusAvailable {
		return nil, domainerrors.ErrItemNotAvailable
	}
	if item.OwnerID == receiverID {
		return nil, domainerrors.BadRequest("cannot request your own listing")
	}

	if _, err := u.donationRepo.GetActiveByItemAndReceiver(ctx, itemID, receiverID); err == nil {
		return nil, domainerrors.Conflict("an active request for this item already exists")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	request := &entities.DonationRequest{
		ID:            uuid.New(),
		ItemID:        itemID,
		ReceiverID:    receiverID,
		DonorID:       item.OwnerID,
		Message:       input.Message,
		Status:        entities.DonationRequested,
		PriorityScore: receiver.PriorityScore,
	}
	if err := u.donationRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	logger.Info(ctx, "donation requested",
		zap.String("request_id", request.ID.String()),
		zap.String("item_id", itemID.String()),
		zap.Int("priority_score", request.PriorityScore))
	return request, nil
}

// RankedRequests returns an item's requests in priority order, decorated
// with 1-based rank, tier and receiver context. Only the item's donor or an
// admin may view the ranking. Rank follows list position; the list is never
// re-sorted here.
func (u *DonationUsecase) RankedRequests(ctx context.Context, itemID, actorID uuid.UUID, actorRole entities.UserRole) ([]*entities.RankedRequest, error) {
	item, err := u.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actorID && actorRole != entities.UserRoleAdmin {
		return nil, domainerrors.ErrForbidden
	}

	requests, err := u.donationRepo.ListByItemPriority(ctx, itemID)
	if err != nil {
		return nil, err
	}

	ranked := make([]*entities.RankedRequest, 0, len(requests))
	for i, request := range requests {
		entry := &entities.RankedRequest{
			DonationRequest: request,
			Rank:            i + 1,
			Tier:            entities.TierForScore(request.PriorityScore),
		}
		receiver, err := u.userRepo.GetByID(ctx, request.ReceiverID)
		if err == nil {
			entry.ReceiverName = receiver.Name
			entry.Badges = entities.BadgesForUser(receiver)
			entry.FamilySize = receiver.FamilySize
			entry.ItemsReceivedThisMonth = receiver.ItemsReceivedThisMonth
		}
		ranked = append(ranked, entry)
	}
	return ranked, nil
}

// Accept moves a request from Requested to Accepted, fixing the meeting
// details and reserving the item. Competing requests stay open until the
// donor decides on them explicitly.
func (u *DonationUsecase) Accept(ctx context.Context, requestID, actorID uuid.UUID, input *entities.AcceptDonationInput) (*entities.DonationRequest, error) {
	request, err := u.donationRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.DonorID != actorID {
		return nil, domainerrors.ErrForbidden
	}
	if !entities.CanTransition(request.Status, entities.DonationAccepted) {
		return nil, domainerrors.ErrInvalidTransition
	}

	meetingDate, err := time.Parse(time.RFC3339, input.MeetingDate)
	if err != nil {
		return nil, domainerrors.BadRequest("meetingDate must be RFC3339")
	}

	request.Status = entities.DonationAccepted
	request.MeetingDate = null.TimeFrom(meetingDate)
	request.MeetingLocation = input.MeetingLocation

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.donationRepo.Update(txCtx, request); err != nil {
			return err
		}
		return u.itemRepo.UpdateStatus(txCtx, request.ItemID, entities.ItemStatusReserved)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "donation accepted", zap.String("request_id", requestID.String()))
	return request, nil
}

// Reject declines a request from any non-terminal state. A reason is
// optional while the request is still pending; declining a submitted proof
// must say why so the receiver can follow up. Rejecting an accepted request
// frees the item again.
func (u *DonationUsecase) Reject(ctx context.Context, requestID, actorID uuid.UUID, input *entities.RejectDonationInput) (*entities.DonationRequest, error) {
	request, err := u.donationRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.DonorID != actorID {
		return nil, domainerrors.ErrForbidden
	}
	if !entities.CanTransition(request.Status, entities.DonationRejected) {
		return nil, domainerrors.ErrInvalidTransition
	}

	reason := strings.TrimSpace(input.Reason)
	if reason == "" && request.Status == entities.DonationProofSubmitted {
		return nil, domainerrors.BadRequest("rejection reason is required when declining a submitted proof")
	}

	wasReserved := request.Status != entities.DonationRequested

	request.Status = entities.DonationRejected
	request.RejectionReason = reason

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.donationRepo.Update(txCtx, request); err != nil {
			return err
		}
		if wasReserved {
			return u.itemRepo.UpdateStatus(txCtx, request.ItemID, entities.ItemStatusAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "donation rejected", zap.String("request_id", requestID.String()))
	return request, nil
}

// Cancel lets a receiver withdraw their own request before it is accepted
func (u *DonationUsecase) Cancel(ctx context.Context, requestID, actorID uuid.UUID) error {
	request, err := u.donationRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.ReceiverID != actorID {
		return domainerrors.ErrForbidden
	}
	if request.Status != entities.DonationRequested {
		return domainerrors.ErrInvalidTransition
	}
	return u.donationRepo.Delete(ctx, requestID)
}

// Complete finalizes a donation after the proof has been approved: the item
// closes, the receiver's monthly counter advances, the donor earns eco score
// and the receiver's priority score is refreshed to reflect the new counter.
// The four writes commit as one transaction so a failure leaves no partial
// state behind.
func (u *DonationUsecase) Complete(ctx context.Context, request *entities.DonationRequest) error {
	if !entities.CanTransition(request.Status, entities.DonationCompleted) {
		return domainerrors.ErrInvalidTransition
	}

	prevStatus := request.Status
	request.Status = entities.DonationCompleted
	request.CompletedAt = null.TimeFrom(time.Now())

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.donationRepo.Update(txCtx, request); err != nil {
			return err
		}
		if err := u.itemRepo.UpdateStatus(txCtx, request.ItemID, entities.ItemStatusCompleted); err != nil {
			return err
		}
		if err := u.userRepo.IncrementItemsReceived(txCtx, request.ReceiverID); err != nil {
			return err
		}
		return u.userRepo.AddEcoScore(txCtx, request.DonorID, ecoScorePerDonation)
	})
	if err != nil {
		// the entity mirrors the rolled back row
		request.Status = prevStatus
		request.CompletedAt = null.Time{}
		return err
	}

	// the counter moved, so the receiver's score drops for future requests
	receiver, err := u.userRepo.GetByID(ctx, request.ReceiverID)
	if err == nil && receiver.VerificationStatus == entities.VerificationVerified {
		receiver.PriorityScore = entities.ComputePriorityScore(receiver)
		receiver.PriorityLevel = entities.PriorityLevelForScore(receiver.PriorityScore)
		if err := u.userRepo.Update(ctx, receiver); err != nil {
			logger.Warn(ctx, "priority refresh failed after completion",
				zap.String("user_id", receiver.ID.String()), zap.Error(err))
		}
	}

	logger.Info(ctx, "donation completed", zap.String("request_id", request.ID.String()))
	return nil
}

// GetByID returns a request visible to its donor, its receiver or an admin
func (u *DonationUsecase) GetByID(ctx context.Context, requestID, actorID uuid.UUID, actorRole entities.UserRole) (*entities.DonationRequest, error) {
	request, err := u.donationRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.DonorID != actorID && request.ReceiverID != actorID && actorRole != entities.UserRoleAdmin {
		return nil, domainerrors.ErrForbidden
	}
	return request, nil
}

// ListByReceiver lists the requests a user has made
func (u *DonationUsecase) ListByReceiver(ctx context.Context, receiverID uuid.UUID) ([]*entities.DonationRequest, error) {
	return u.donationRepo.ListByReceiver(ctx, receiverID)
}

// ListByDonor lists the requests against a user's listings
func (u *DonationUsecase) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*entities.DonationRequest, error) {
	return u.donationRepo.ListByDonor(ctx, donorID)
}
