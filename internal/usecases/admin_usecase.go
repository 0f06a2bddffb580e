package usecases

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/domain/repositories"
	"garagesale.backend/pkg/logger"
)

// DashboardStats aggregates the counters shown on the admin dashboard
type DashboardStats struct {
	TotalUsers           int64 `json:"totalUsers"`
	TotalItems           int64 `json:"totalItems"`
	PendingVerifications int64 `json:"pendingVerifications"`
	ActiveDonations      int64 `json:"activeDonations"`
	CompletedDonations   int64 `json:"completedDonations"`
}

// AdminUsecase handles platform administration
type AdminUsecase struct {
	userRepo     repositories.UserRepository
	itemRepo     repositories.ItemRepository
	donationRepo repositories.DonationRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	itemRepo repositories.ItemRepository,
	donationRepo repositories.DonationRepository,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:     userRepo,
		itemRepo:     itemRepo,
		donationRepo: donationRepo,
	}
}

// Dashboard gathers platform-wide counters
func (u *AdminUsecase) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalUsers, err = u.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalItems, err = u.itemRepo.Count(ctx); err != nil {
		return nil, err
	}

	pending, err := u.userRepo.ListByVerificationStatus(ctx, entities.VerificationPending)
	if err != nil {
		return nil, err
	}
	stats.PendingVerifications = int64(len(pending))

	for _, status := range []entities.DonationStatus{
		entities.DonationRequested,
		entities.DonationAccepted,
		entities.DonationProofSubmitted,
	} {
		n, err := u.donationRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats.ActiveDonations += n
	}

	if stats.CompletedDonations, err = u.donationRepo.CountByStatus(ctx, entities.DonationCompleted); err != nil {
		return nil, err
	}

	return stats, nil
}

// ListUsers lists users with an optional name/email search
func (u *AdminUsecase) ListUsers(ctx context.Context, search string) ([]*entities.User, error) {
	return u.userRepo.List(ctx, search)
}

// SetUserActive enables or disables an account. Admins cannot disable
// themselves.
func (u *AdminUsecase) SetUserActive(ctx context.Context, targetID, actorID uuid.UUID, active bool) error {
	if targetID == actorID && !active {
		return domainerrors.BadRequest("cannot disable your own account")
	}
	if err := u.userRepo.SetActive(ctx, targetID, active); err != nil {
		return err
	}
	logger.Info(ctx, "account active flag changed",
		zap.String("user_id", targetID.String()),
		zap.Bool("active", active))
	return nil
}

// DeleteUser soft deletes an account
func (u *AdminUsecase) DeleteUser(ctx context.Context, targetID, actorID uuid.UUID) error {
	if targetID == actorID {
		return domainerrors.BadRequest("cannot delete your own account")
	}
	return u.userRepo.SoftDelete(ctx, targetID)
}
