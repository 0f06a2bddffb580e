package repositories

import (
	"context"

	"github.com/google/uuid"
	"garagesale.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string) ([]*entities.User, error)
	ListByVerificationStatus(ctx context.Context, status entities.VerificationStatus) ([]*entities.User, error)
	IncrementItemsReceived(ctx context.Context, id uuid.UUID) error
	AddEcoScore(ctx context.Context, id uuid.UUID, points int) error
	ResetMonthlyAllotments(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}
