package handlers

import (
	"context"

	"github.com/google/uuid"

	"garagesale.backend/internal/domain/entities"
)

// userRepoStub lets flow tests drive real usecases without a database.
type userRepoStub struct {
	createFn       func(ctx context.Context, user *entities.User) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	getByEmailFn   func(ctx context.Context, email string) (*entities.User, error)
	updateFn       func(ctx context.Context, user *entities.User) error
	updatePassFn   func(ctx context.Context, id uuid.UUID, passwordHash string) error
	setActiveFn    func(ctx context.Context, id uuid.UUID, active bool) error
	softDeleteFn   func(ctx context.Context, id uuid.UUID) error
	listFn         func(ctx context.Context, search string) ([]*entities.User, error)
	listByStatusFn func(ctx context.Context, status entities.VerificationStatus) ([]*entities.User, error)
	incReceivedFn  func(ctx context.Context, id uuid.UUID) error
	addEcoScoreFn  func(ctx context.Context, id uuid.UUID, points int) error
	resetFn        func(ctx context.Context) (int64, error)
	countFn        func(ctx context.Context) (int64, error)
}

func (s userRepoStub) Create(ctx context.Context, user *entities.User) error {
	return s.createFn(ctx, user)
}
func (s userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s userRepoStub) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s userRepoStub) Update(ctx context.Context, user *entities.User) error {
	return s.updateFn(ctx, user)
}
func (s userRepoStub) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return s.updatePassFn(ctx, id, passwordHash)
}
func (s userRepoStub) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.setActiveFn(ctx, id, active)
}
func (s userRepoStub) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return s.softDeleteFn(ctx, id)
}
func (s userRepoStub) List(ctx context.Context, search string) ([]*entities.User, error) {
	return s.listFn(ctx, search)
}
func (s userRepoStub) ListByVerificationStatus(ctx context.Context, status entities.VerificationStatus) ([]*entities.User, error) {
	return s.listByStatusFn(ctx, status)
}
func (s userRepoStub) IncrementItemsReceived(ctx context.Context, id uuid.UUID) error {
	return s.incReceivedFn(ctx, id)
}
func (s userRepoStub) AddEcoScore(ctx context.Context, id uuid.UUID, points int) error {
	return s.addEcoScoreFn(ctx, id, points)
}
func (s userRepoStub) ResetMonthlyAllotments(ctx context.Context) (int64, error) {
	return s.resetFn(ctx)
}
func (s userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

// donationRepoStub covers the donation request lifecycle endpoints.
type donationRepoStub struct {
	createFn        func(ctx context.Context, request *entities.DonationRequest) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*entities.DonationRequest, error)
	getActiveFn     func(ctx context.Context, itemID, receiverID uuid.UUID) (*entities.DonationRequest, error)
	updateFn        func(ctx context.Context, request *entities.DonationRequest) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
	listByItemFn    func(ctx context.Context, itemID uuid.UUID) ([]*entities.DonationRequest, error)
	listByRecvFn    func(ctx context.Context, receiverID uuid.UUID) ([]*entities.DonationRequest, error)
	listByDonorFn   func(ctx context.Context, donorID uuid.UUID) ([]*entities.DonationRequest, error)
	countByStatusFn func(ctx context.Context, status entities.DonationStatus) (int64, error)
}

func (s donationRepoStub) Create(ctx context.Context, request *entities.DonationRequest) error {
	return s.createFn(ctx, request)
}
func (s donationRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.DonationRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s donationRepoStub) GetActiveByItemAndReceiver(ctx context.Context, itemID, receiverID uuid.UUID) (*entities.DonationRequest, error) {
	return s.getActiveFn(ctx, itemID, receiverID)
}
func (s donationRepoStub) Update(ctx context.Context, request *entities.DonationRequest) error {
	return s.updateFn(ctx, request)
}
func (s donationRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}
func (s donationRepoStub) ListByItemPriority(ctx context.Context, itemID uuid.UUID) ([]*entities.DonationRequest, error) {
	return s.listByItemFn(ctx, itemID)
}
func (s donationRepoStub) ListByReceiver(ctx context.Context, receiverID uuid.UUID) ([]*entities.DonationRequest, error) {
	return s.listByRecvFn(ctx, receiverID)
}
func (s donationRepoStub) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*entities.DonationRequest, error) {
	return s.listByDonorFn(ctx, donorID)
}
func (s donationRepoStub) CountByStatus(ctx context.Context, status entities.DonationStatus) (int64, error) {
	return s.countByStatusFn(ctx, status)
}

// itemRepoStub backs listing lookups in donation flow tests.
type itemRepoStub struct {
	createFn       func(ctx context.Context, item *entities.Item) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*entities.Item, error)
	updateFn       func(ctx context.Context, item *entities.Item) error
	updateStatusFn func(ctx context.Context, id uuid.UUID, status entities.ItemStatus) error
	softDeleteFn   func(ctx context.Context, id uuid.UUID) error
	listFn         func(ctx context.Context, filter entities.ItemFilter) ([]*entities.Item, int64, error)
	listByOwnerFn  func(ctx context.Context, ownerID uuid.UUID) ([]*entities.Item, error)
	listExpiredFn  func(ctx context.Context, limit int) ([]*entities.Item, error)
	expireItemsFn  func(ctx context.Context, ids []uuid.UUID) error
	countFn        func(ctx context.Context) (int64, error)
}

func (s itemRepoStub) Create(ctx context.Context, item *entities.Item) error {
	return s.createFn(ctx, item)
}
func (s itemRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Item, error) {
	return s.getByIDFn(ctx, id)
}
func (s itemRepoStub) Update(ctx context.Context, item *entities.Item) error {
	return s.updateFn(ctx, item)
}
func (s itemRepoStub) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ItemStatus) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s itemRepoStub) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return s.softDeleteFn(ctx, id)
}
func (s itemRepoStub) List(ctx context.Context, filter entities.ItemFilter) ([]*entities.Item, int64, error) {
	return s.listFn(ctx, filter)
}
func (s itemRepoStub) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Item, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s itemRepoStub) ListExpired(ctx context.Context, limit int) ([]*entities.Item, error) {
	return s.listExpiredFn(ctx, limit)
}
func (s itemRepoStub) ExpireItems(ctx context.Context, ids []uuid.UUID) error {
	return s.expireItemsFn(ctx, ids)
}
func (s itemRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

// uowStub runs the function directly, outside any transaction.
type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
