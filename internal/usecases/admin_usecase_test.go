package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/usecases"
)

func newAdminFixture() (*MockUserRepository, *MockItemRepository, *MockDonationRepository, *usecases.AdminUsecase) {
	userRepo := new(MockUserRepository)
	itemRepo := new(MockItemRepository)
	donationRepo := new(MockDonationRepository)
	return userRepo, itemRepo, donationRepo, usecases.NewAdminUsecase(userRepo, itemRepo, donationRepo)
}

func TestAdminDashboard(t *testing.T) {
	userRepo, itemRepo, donationRepo, uc := newAdminFixture()

	userRepo.On("Count", mock.Anything).Return(int64(120), nil)
	itemRepo.On("Count", mock.Anything).Return(int64(45), nil)
	userRepo.On("ListByVerificationStatus", mock.Anything, entities.VerificationPending).
		Return([]*entities.User{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}, nil)
	donationRepo.On("CountByStatus", mock.Anything, entities.DonationRequested).Return(int64(5), nil)
	donationRepo.On("CountByStatus", mock.Anything, entities.DonationAccepted).Return(int64(2), nil)
	donationRepo.On("CountByStatus", mock.Anything, entities.DonationProofSubmitted).Return(int64(1), nil)
	donationRepo.On("CountByStatus", mock.Anything, entities.DonationCompleted).Return(int64(30), nil)

	stats, err := uc.Dashboard(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 120, stats.TotalUsers)
	require.EqualValues(t, 45, stats.TotalItems)
	require.EqualValues(t, 3, stats.PendingVerifications)
	require.EqualValues(t, 8, stats.ActiveDonations)
	require.EqualValues(t, 30, stats.CompletedDonations)
}

func TestAdminSetUserActive(t *testing.T) {
	userRepo, _, _, uc := newAdminFixture()
	admin := uuid.New()
	target := uuid.New()

	userRepo.On("SetActive", mock.Anything, target, false).Return(nil)
	require.NoError(t, uc.SetUserActive(context.Background(), target, admin, false))

	// self-disable refused
	err := uc.SetUserActive(context.Background(), admin, admin, false)
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	// self re-enable is fine
	userRepo.On("SetActive", mock.Anything, admin, true).Return(nil)
	require.NoError(t, uc.SetUserActive(context.Background(), admin, admin, true))
}

func TestAdminDeleteUser(t *testing.T) {
	userRepo, _, _, uc := newAdminFixture()
	admin := uuid.New()
	target := uuid.New()

	userRepo.On("SoftDelete", mock.Anything, target).Return(nil)
	require.NoError(t, uc.DeleteUser(context.Background(), target, admin))
	require.ErrorIs(t, uc.DeleteUser(context.Background(), admin, admin), domainerrors.ErrInvalidInput)
}

func TestAdminListUsers(t *testing.T) {
	userRepo, _, _, uc := newAdminFixture()
	userRepo.On("List", mock.Anything, "amira").Return([]*entities.User{{ID: uuid.New()}}, nil)

	users, err := uc.ListUsers(context.Background(), "amira")
	require.NoError(t, err)
	require.Len(t, users, 1)
}
