package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/infrastructure/models"
)

// MessageRepository implements chat message data operations
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create stores a new message
func (r *MessageRepository) Create(ctx context.Context, message *entities.Message) error {
	m, err := messageToModel(message)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	message.ID = m.ID
	message.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Message, error) {
	var m models.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return messageToEntity(&m), nil
}

// ListForUser returns every message the user sent or received, newest first
func (r *MessageRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Message, error) {
	var messageModels []models.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messageModels).Error
	if err != nil {
		return nil, err
	}
	return messagesToEntities(messageModels), nil
}

// ListBetween returns the thread between two users, oldest first
func (r *MessageRepository) ListBetween(ctx context.Context, userID, peerID uuid.UUID) ([]*entities.Message, error) {
	var messageModels []models.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at ASC").
		Find(&messageModels).Error
	if err != nil {
		return nil, err
	}
	return messagesToEntities(messageModels), nil
}

// ListByItem returns the user's messages anchored to an item, oldest first
func (r *MessageRepository) ListByItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) ([]*entities.Message, error) {
	var messageModels []models.Message
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&messageModels).Error
	if err != nil {
		return nil, err
	}
	return messagesToEntities(messageModels), nil
}

// MarkRead marks a single message as read
func (r *MessageRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// MarkConversationRead marks all messages from peer to user as read.
// A conversation with no unread messages is not an error.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, userID, peerID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND is_read = ?", userID, peerID, false).
		Update("is_read", true).Error
}

// UnreadCount returns the number of unread messages addressed to the user
func (r *MessageRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// Search returns the user's messages whose content matches the query
func (r *MessageRepository) Search(ctx context.Context, userID uuid.UUID, query string) ([]*entities.Message, error) {
	var messageModels []models.Message
	searchTerm := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Where("LOWER(content) LIKE ?", searchTerm).
		Order("created_at DESC").
		Find(&messageModels).Error
	if err != nil {
		return nil, err
	}
	return messagesToEntities(messageModels), nil
}

// Delete soft deletes a message
func (r *MessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Message{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func messageToModel(e *entities.Message) (*models.Message, error) {
	m := &models.Message{
		ID:          e.ID,
		SenderID:    e.SenderID,
		RecipientID: e.RecipientID,
		Content:     e.Content,
		IsRead:      e.IsRead,
		CreatedAt:   e.CreatedAt,
	}
	if e.ItemID.Valid {
		itemID, err := uuid.Parse(e.ItemID.String)
		if err != nil {
			return nil, domainerrors.ErrInvalidInput
		}
		m.ItemID = &itemID
	}
	return m, nil
}

func messageToEntity(m *models.Message) *entities.Message {
	e := &entities.Message{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
	if m.ItemID != nil {
		e.ItemID = null.StringFrom(m.ItemID.String())
	}
	return e
}

func messagesToEntities(messageModels []models.Message) []*entities.Message {
	messages := make([]*entities.Message, 0, len(messageModels))
	for i := range messageModels {
		messages = append(messages, messageToEntity(&messageModels[i]))
	}
	return messages
}
