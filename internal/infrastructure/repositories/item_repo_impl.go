package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/infrastructure/models"
	"garagesale.backend/pkg/utils"
)

// ItemRepository implements listing data operations
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create creates a new listing
func (r *ItemRepository) Create(ctx context.Context, item *entities.Item) error {
	m, err := itemToModel(item)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	item.ID = m.ID
	return nil
}

// GetByID gets a listing by ID
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Item, error) {
	var m models.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return itemToEntity(&m)
}

// Update persists owner edits to a listing
func (r *ItemRepository) Update(ctx context.Context, item *entities.Item) error {
	imageKeys, err := encodeImageKeys(item.ImageKeys)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"title":       item.Title,
		"description": item.Description,
		"category":    item.Category,
		"condition":   item.Condition,
		"location":    item.Location,
		"image_keys":  imageKeys,
		"status":      string(item.Status),
		"updated_at":  time.Now(),
	}
	if item.AskingPrice.Valid {
		updates["asking_price"] = item.AskingPrice.Int64
	} else {
		updates["asking_price"] = nil
	}
	if item.ExpiresAt.Valid {
		updates["expires_at"] = item.ExpiresAt.Time
	} else {
		updates["expires_at"] = nil
	}

	result := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", item.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus moves a listing between availability states. It joins an
// open unit-of-work transaction when one is in the context.
func (r *ItemRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ItemStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a listing
func (r *ItemRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists items matching the filter with total count for pagination
func (r *ItemRepository) List(ctx context.Context, filter entities.ItemFilter) ([]*entities.Item, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Item{})

	if filter.ItemType != "" {
		query = query.Where("item_type = ?", string(filter.ItemType))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Condition != "" {
		query = query.Where("condition = ?", filter.Condition)
	}
	if filter.Search != "" {
		searchTerm := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := utils.GetPaginationParams(filter.Page, filter.Limit)
	query = query.Order("created_at DESC")
	if params.Limit > 0 {
		query = query.Offset(params.CalculateOffset()).Limit(params.Limit)
	}

	var itemModels []models.Item
	if err := query.Find(&itemModels).Error; err != nil {
		return nil, 0, err
	}

	items, err := itemsToEntities(itemModels)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByOwner lists all listings posted by a user
func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Item, error) {
	var itemModels []models.Item
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&itemModels).Error
	if err != nil {
		return nil, err
	}
	return itemsToEntities(itemModels)
}

// ListExpired returns available listings whose expiry has passed
func (r *ItemRepository) ListExpired(ctx context.Context, limit int) ([]*entities.Item, error) {
	var itemModels []models.Item
	query := r.db.WithContext(ctx).
		Where("status = ?", string(entities.ItemStatusAvailable)).
		Where("expires_at IS NOT NULL AND expires_at <= ?", time.Now()).
		Order("expires_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return itemsToEntities(itemModels)
}

// ExpireItems marks the given listings as completed in one statement
func (r *ItemRepository) ExpireItems(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Item{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     string(entities.ItemStatusCompleted),
			"updated_at": time.Now(),
		}).Error
}

// Count returns the total number of listings
func (r *ItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Item{}).Count(&count).Error
	return count, err
}

func encodeImageKeys(keys []string) (string, error) {
	if len(keys) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(keys)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeImageKeys(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

func itemToModel(e *entities.Item) (*models.Item, error) {
	imageKeys, err := encodeImageKeys(e.ImageKeys)
	if err != nil {
		return nil, err
	}
	return &models.Item{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		Title:       e.Title,
		Description: e.Description,
		ItemType:    string(e.ItemType),
		Category:    e.Category,
		Condition:   e.Condition,
		Location:    e.Location,
		ImageKeys:   imageKeys,
		AskingPrice: e.AskingPrice.Ptr(),
		Status:      string(e.Status),
		ExpiresAt:   e.ExpiresAt.Ptr(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}, nil
}

func itemToEntity(m *models.Item) (*entities.Item, error) {
	imageKeys, err := decodeImageKeys(m.ImageKeys)
	if err != nil {
		return nil, err
	}
	return &entities.Item{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Description: m.Description,
		ItemType:    entities.ItemType(m.ItemType),
		Category:    m.Category,
		Condition:   m.Condition,
		Location:    m.Location,
		ImageKeys:   imageKeys,
		AskingPrice: null.Int64FromPtr(m.AskingPrice),
		Status:      entities.ItemStatus(m.Status),
		ExpiresAt:   null.TimeFromPtr(m.ExpiresAt),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func itemsToEntities(itemModels []models.Item) ([]*entities.Item, error) {
	items := make([]*entities.Item, 0, len(itemModels))
	for i := range itemModels {
		item, err := itemToEntity(&itemModels[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
