package usecases

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/domain/repositories"
	"garagesale.backend/internal/infrastructure/storage"
	"garagesale.backend/pkg/logger"
	"garagesale.backend/pkg/utils"
)

// imageURLExpiry bounds presigned links handed to clients
const imageURLExpiry = time.Hour

// maxItemImages caps photos per listing
const maxItemImages = 6

// ItemUsecase handles marketplace listing business logic
type ItemUsecase struct {
	itemRepo repositories.ItemRepository
	store    storage.ObjectStore
}

// NewItemUsecase creates a new item usecase
func NewItemUsecase(itemRepo repositories.ItemRepository, store storage.ObjectStore) *ItemUsecase {
	return &ItemUsecase{
		itemRepo: itemRepo,
		store:    store,
	}
}

// Create validates and stores a new listing
func (u *ItemUsecase) Create(ctx context.Context, ownerID uuid.UUID, input *entities.CreateItemInput) (*entities.Item, error) {
	if !entities.IsValidItemType(input.ItemType) {
		return nil, domainerrors.BadRequest("unknown item type")
	}
	if input.ItemType == entities.ItemTypeSell && input.AskingPrice == nil {
		return nil, domainerrors.BadRequest("asking price is required for sale listings")
	}

	item := &entities.Item{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		ItemType:    input.ItemType,
		Category:    input.Category,
		Condition:   input.Condition,
		Location:    input.Location,
		ImageKeys:   []string{},
		Status:      entities.ItemStatusAvailable,
	}
	if input.AskingPrice != nil {
		item.AskingPrice = null.Int64FromPtr(input.AskingPrice)
	}
	if input.ExpiresAt != nil && *input.ExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, *input.ExpiresAt)
		if err != nil {
			return nil, domainerrors.BadRequest("expiresAt must be RFC3339")
		}
		item.ExpiresAt = null.TimeFrom(expiresAt)
	}

	if err := u.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	logger.Info(ctx, "item listed",
		zap.String("item_id", item.ID.String()),
		zap.String("type", string(item.ItemType)))
	return item, nil
}

// GetByID gets a listing by ID
func (u *ItemUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Item, error) {
	return u.itemRepo.GetByID(ctx, id)
}

// Update applies owner edits. Only the owner or an admin may edit, and a
// listing with an accepted donation underway cannot be edited.
func (u *ItemUsecase) Update(ctx context.Context, itemID, actorID uuid.UUID, actorRole entities.UserRole, input *entities.UpdateItemInput) (*entities.Item, error) {
	item, err := u.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actorID && actorRole != entities.UserRoleAdmin {
		return nil, domainerrors.ErrForbidden
	}
	if item.Status != entities.ItemStatusAvailable {
		return nil, domainerrors.ErrItemNotAvailable
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Condition != nil {
		item.Condition = *input.Condition
	}
	if input.Location != nil {
		item.Location = *input.Location
	}
	if input.AskingPrice != nil {
		item.AskingPrice = null.Int64From(*input.AskingPrice)
	}
	if input.ExpiresAt != nil && *input.ExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, *input.ExpiresAt)
		if err != nil {
			return nil, domainerrors.BadRequest("expiresAt must be RFC3339")
		}
		item.ExpiresAt = null.TimeFrom(expiresAt)
	}

	if err := u.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a listing (owner or admin only)
func (u *ItemUsecase) Delete(ctx context.Context, itemID, actorID uuid.UUID, actorRole entities.UserRole) error {
	item, err := u.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != actorID && actorRole != entities.UserRoleAdmin {
		return domainerrors.ErrForbidden
	}
	return u.itemRepo.SoftDelete(ctx, itemID)
}

// List returns listings matching the filter plus pagination metadata
func (u *ItemUsecase) List(ctx context.Context, filter entities.ItemFilter) ([]*entities.Item, utils.PaginationMeta, error) {
	items, total, err := u.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	meta := utils.CalculateMeta(total, filter.Page, filter.Limit)
	return items, meta, nil
}

// ListByOwner lists a user's own listings
func (u *ItemUsecase) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Item, error) {
	return u.itemRepo.ListByOwner(ctx, ownerID)
}

// AttachImage uploads a photo for a listing and records its object key
func (u *ItemUsecase) AttachImage(ctx context.Context, itemID, actorID uuid.UUID, reader io.Reader, size int64, contentType, filename string) (*entities.Item, error) {
	if err := entities.ValidateImageUpload(size, contentType); err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	item, err := u.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actorID {
		return nil, domainerrors.ErrForbidden
	}
	if len(item.ImageKeys) >= maxItemImages {
		return nil, domainerrors.BadRequest("image limit reached for this listing")
	}

	key := fmt.Sprintf("items/%s/%s%s", item.ID, uuid.New(), path.Ext(filename))
	if err := u.store.Upload(ctx, key, reader, size, contentType); err != nil {
		return nil, err
	}

	item.ImageKeys = append(item.ImageKeys, key)
	if err := u.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ImageURLs resolves a listing's image keys to presigned download URLs
func (u *ItemUsecase) ImageURLs(ctx context.Context, item *entities.Item) ([]string, error) {
	urls := make([]string, 0, len(item.ImageKeys))
	for _, key := range item.ImageKeys {
		url, err := u.store.PresignedGetURL(ctx, key, imageURLExpiry)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
