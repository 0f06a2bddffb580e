package usecases

import (
	"context"
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

// VerificationUsecase handles receiver verification: submission by the
// receiver and review by an admin. Verification gates donation requests.
type VerificationUsecase struct {
	userRepo repositories.UserRepository
}

// NewVerificationUsecase creates a new verification usecase
func NewVerificationUsecase(userRepo repositories.UserRepository) *VerificationUsecase {
	return &VerificationUsecase{userRepo: userRepo}
}

// Submit records a verification submission and moves the account to Pending.
// A rejected receiver may resubmit; a verified or already-pending one may not.
func (u *VerificationUsecase) Submit(ctx context.Context, userID uuid.UUID, input *entities.VerificationSubmission) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch user.VerificationStatus {
	case entities.VerificationPending:
		return nil, domainerrors.Conflict("verification already under review")
	case entities.VerificationVerified:
		return nil, domainerrors.Conflict("account is already verified")
	}

	user.CNIC = input.CNIC
	user.IDFrontKey = input.IDFrontKey
	user.IDBackKey = input.IDBackKey
	user.SelfieWithIDKey = input.SelfieWithIDKey
	user.MonthlyIncomeRange = input.MonthlyIncomeRange
	user.FamilySize = input.FamilySize
	user.IsSingleMother = input.IsSingleMother
	user.IsDisabled = input.IsDisabled
	user.IsOrphanage = input.IsOrphanage
	user.NeedsDescription = input.NeedsDescription
	user.RejectionReason = ""
	user.VerificationStatus = entities.VerificationPending

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "verification submitted", zap.String("user_id", userID.String()))
	return user, nil
}

// Profile returns the user whose verification state is being asked about
func (u *VerificationUsecase) Profile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// ListPending returns submissions awaiting admin review, oldest first
func (u *VerificationUsecase) ListPending(ctx context.Context) ([]*entities.User, error) {
	return u.userRepo.ListByVerificationStatus(ctx, entities.VerificationPending)
}

// Approve verifies a pending receiver and computes their priority score from
// the submitted attributes. A non-nil levelOverride pins the priority level
// the reviewer chose instead of the derived one.
func (u *VerificationUsecase) Approve(ctx context.Context, userID uuid.UUID, levelOverride *int) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.VerificationStatus != entities.VerificationPending {
		return nil, domainerrors.Conflict("no pending verification for this user")
	}

	user.VerificationStatus = entities.VerificationVerified
	user.PriorityScore = entities.ComputePriorityScore(user)
	user.PriorityLevel = entities.PriorityLevelForScore(user.PriorityScore)
	if levelOverride != nil {
		if *levelOverride < 0 || *levelOverride > 10 {
			return nil, domainerrors.BadRequest("priority level must be between 0 and 10")
		}
		user.PriorityLevel = *levelOverride
	}
	user.VerifiedAt = null.TimeFrom(time.Now())

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "verification approved",
		zap.String("user_id", userID.String()),
		zap.Int("priority_score", user.PriorityScore))
	return user, nil
}

// Reject declines a pending submission with a reason. The receiver may
// resubmit afterwards.
func (u *VerificationUsecase) Reject(ctx context.Context, userID uuid.UUID, reason string) (*entities.User, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domainerrors.BadRequest("rejection reason is required")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.VerificationStatus != entities.VerificationPending {
		return nil, domainerrors.Conflict("no pending verification for this user")
	}

	user.VerificationStatus = entities.VerificationRejected
	user.RejectionReason = strings.TrimSpace(reason)

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "verification rejected", zap.String("user_id", userID.String()))
	return user, nil
}

// RecalculateScore refreshes a verified receiver's score after attributes or
// monthly counters change.
func (u *VerificationUsecase) RecalculateScore(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.VerificationStatus != entities.VerificationVerified {
		return nil, domainerrors.ErrNotVerified
	}

	user.PriorityScore = entities.ComputePriorityScore(user)
	user.PriorityLevel = entities.PriorityLevelForScore(user.PriorityScore)

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
