package repositories

import (
	"context"

	"github.com/google/uuid"
	"garagesale.backend/internal/domain/entities"
)

// MessageRepository defines chat message data operations
type MessageRepository interface {
	Create(ctx context.Context, message *entities.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Message, error)
	// ListForUser returns every message the user sent or received, newest
	// first. Conversation grouping is derived from this list.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Message, error)
	ListBetween(ctx context.Context, userID, peerID uuid.UUID) ([]*entities.Message, error)
	ListByItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) ([]*entities.Message, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkConversationRead(ctx context.Context, userID, peerID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	Search(ctx context.Context, userID uuid.UUID, query string) ([]*entities.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
