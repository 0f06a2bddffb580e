package repositories

import (
	"context"

	"github.com/google/uuid"
	"garagesale.backend/internal/domain/entities"
)

// ItemRepository defines listing data operations
type ItemRepository interface {
	Create(ctx context.Context, item *entities.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Item, error)
	Update(ctx context.Context, item *entities.Item) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ItemStatus) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter entities.ItemFilter) ([]*entities.Item, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.Item, error)
	ListExpired(ctx context.Context, limit int) ([]*entities.Item, error)
	ExpireItems(ctx context.Context, ids []uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
