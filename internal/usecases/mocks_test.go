package usecases_test

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"garagesale.backend/internal/domain/entities"
)

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) ListByVerificationStatus(ctx context.Context, status entities.VerificationStatus) ([]*entities.User, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) IncrementItemsReceived(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) AddEcoScore(ctx context.Context, id uuid.UUID, points int) error {
	args := m.Called(ctx, id, points)
	return args.Error(0)
}

func (m *MockUserRepository) ResetMonthlyAllotments(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *entities.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Item), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, item *entities.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ItemStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockItemRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) List(ctx context.Context, filter entities.ItemFilter) ([]*entities.Item, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Item, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Item), args.Error(1)
}

func (m *MockItemRepository) ListExpired(ctx context.Context, limit int) ([]*entities.Item, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Item), args.Error(1)
}

func (m *MockItemRepository) ExpireItems(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockItemRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock DonationRepository
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) Create(ctx context.Context, request *entities.DonationRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockDonationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.DonationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DonationRequest), args.Error(1)
}

func (m *MockDonationRepository) GetActiveByItemAndReceiver(ctx context.Context, itemID, receiverID uuid.UUID) (*entities.DonationRequest, error) {
	args := m.Called(ctx, itemID, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DonationRequest), args.Error(1)
}

func (m *MockDonationRepository) Update(ctx context.Context, request *entities.DonationRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockDonationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDonationRepository) ListByItemPriority(ctx context.Context, itemID uuid.UUID) ([]*entities.DonationRequest, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DonationRequest), args.Error(1)
}

func (m *MockDonationRepository) ListByReceiver(ctx context.Context, receiverID uuid.UUID) ([]*entities.DonationRequest, error) {
	args := m.Called(ctx, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DonationRequest), args.Error(1)
}

func (m *MockDonationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*entities.DonationRequest, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DonationRequest), args.Error(1)
}

func (m *MockDonationRepository) CountByStatus(ctx context.Context, status entities.DonationStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// Mock UnitOfWork. A nil return runs fn outside any transaction, so tests
// exercise the sequence while failure cases stub the error directly.
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// Mock PhotoProofRepository
type MockPhotoProofRepository struct {
	mock.Mock
}

func (m *MockPhotoProofRepository) Create(ctx context.Context, proof *entities.PhotoProof) error {
	args := m.Called(ctx, proof)
	return args.Error(0)
}

func (m *MockPhotoProofRepository) GetByDonationID(ctx context.Context, donationID uuid.UUID) (*entities.PhotoProof, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PhotoProof), args.Error(1)
}

func (m *MockPhotoProofRepository) Update(ctx context.Context, proof *entities.PhotoProof) error {
	args := m.Called(ctx, proof)
	return args.Error(0)
}

// Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *entities.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Message), args.Error(1)
}

func (m *MockMessageRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Message), args.Error(1)
}

func (m *MockMessageRepository) ListBetween(ctx context.Context, userID, peerID uuid.UUID) ([]*entities.Message, error) {
	args := m.Called(ctx, userID, peerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Message), args.Error(1)
}

func (m *MockMessageRepository) ListByItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) ([]*entities.Message, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Message), args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMessageRepository) MarkConversationRead(ctx context.Context, userID, peerID uuid.UUID) error {
	args := m.Called(ctx, userID, peerID)
	return args.Error(0)
}

func (m *MockMessageRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) Search(ctx context.Context, userID uuid.UUID, query string) ([]*entities.Message, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Message), args.Error(1)
}

func (m *MockMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, objectName, reader, size, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) Delete(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockObjectStore) PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}
