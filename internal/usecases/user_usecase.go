package usecases

import (
	"context"

	"github.com/google/uuid"

	"garagesale.backend/internal/domain/entities"
	"garagesale.backend/internal/domain/repositories"
)

// UserUsecase handles profile reads and edits
type UserUsecase struct {
	userRepo     repositories.UserRepository
	itemRepo     repositories.ItemRepository
	donationRepo repositories.DonationRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(
	userRepo repositories.UserRepository,
	itemRepo repositories.ItemRepository,
	donationRepo repositories.DonationRepository,
) *UserUsecase {
	return &UserUsecase{
		userRepo:     userRepo,
		itemRepo:     itemRepo,
		donationRepo: donationRepo,
	}
}

// GetProfile returns a user's profile
func (u *UserUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies the editable profile fields
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.NeedsDescription != "" {
		user.NeedsDescription = input.NeedsDescription
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Stats summarizes the user's marketplace activity
func (u *UserUsecase) Stats(ctx context.Context, userID uuid.UUID) (*entities.UserStats, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := u.itemRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	donations, err := u.donationRepo.ListByDonor(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed := 0
	for _, d := range donations {
		if d.Status == entities.DonationCompleted {
			completed++
		}
	}

	return &entities.UserStats{
		EcoScore:               user.EcoScore,
		ItemsListed:            len(items),
		DonationsCompleted:     completed,
		ItemsReceivedThisMonth: user.ItemsReceivedThisMonth,
	}, nil
}
