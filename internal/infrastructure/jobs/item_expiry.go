package jobs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"garagesale.backend/internal/domain/entities"
)

type expiringItemRepo interface {
	ListExpired(ctx context.Context, limit int) ([]*entities.Item, error)
	ExpireItems(ctx context.Context, ids []uuid.UUID) error
}

// ItemExpiryJob closes listings whose expiry date has passed
type ItemExpiryJob struct {
	repo     expiringItemRepo
	interval time.Duration
	stop     chan struct{}
}

func NewItemExpiryJob(repo expiringItemRepo) *ItemExpiryJob {
	return &ItemExpiryJob{
		repo:     repo,
		interval: 5 * time.Minute,
		stop:     make(chan struct{}),
	}
}

func (j *ItemExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting item expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Item expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Item expiry job stopped")
			return
		case <-ticker.C:
			j.processExpiredItems(ctx)
		}
	}
}

func (j *ItemExpiryJob) Stop() {
	close(j.stop)
}

func (j *ItemExpiryJob) processExpiredItems(ctx context.Context) {
	expired, err := j.repo.ListExpired(ctx, 100)
	if err != nil {
		log.Printf("❌ Error fetching expired listings: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	log.Printf("🔄 Processing %d expired listings...", len(expired))

	var ids []uuid.UUID
	for _, item := range expired {
		ids = append(ids, item.ID)
	}

	if err := j.repo.ExpireItems(ctx, ids); err != nil {
		log.Printf("❌ Error expiring listings: %v", err)
		return
	}

	log.Printf("✅ Expired %d listings", len(expired))
}
