package jobs

import (
	"context"
	"log"
	"time"
)

type allotmentResetRepo interface {
	ResetMonthlyAllotments(ctx context.Context) (int64, error)
}

// AllotmentResetJob zeroes every user's monthly items-received counter at the
// start of each calendar month. The check interval is coarse; the job fires
// at most once per month because it remembers the last month it reset.
type AllotmentResetJob struct {
	repo      allotmentResetRepo
	interval  time.Duration
	stop      chan struct{}
	lastReset time.Time
	now       func() time.Time
}

func NewAllotmentResetJob(repo allotmentResetRepo) *AllotmentResetJob {
	return &AllotmentResetJob{
		repo:      repo,
		interval:  time.Hour,
		stop:      make(chan struct{}),
		lastReset: time.Now(),
		now:       time.Now,
	}
}

func (j *AllotmentResetJob) Start(ctx context.Context) {
	log.Println("🕐 Starting monthly allotment reset job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Allotment reset job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Allotment reset job stopped")
			return
		case <-ticker.C:
			j.maybeReset(ctx)
		}
	}
}

func (j *AllotmentResetJob) Stop() {
	close(j.stop)
}

func (j *AllotmentResetJob) maybeReset(ctx context.Context) {
	now := j.now()
	if sameMonth(now, j.lastReset) {
		return
	}

	reset, err := j.repo.ResetMonthlyAllotments(ctx)
	if err != nil {
		log.Printf("❌ Error resetting monthly allotments: %v", err)
		return
	}

	j.lastReset = now
	log.Printf("✅ Reset monthly allotments for %d users", reset)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
