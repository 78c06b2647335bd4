package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/saintdavies/property-console/internal/core/domain"
)

// ActivityRepository keeps the activity trail in a slice.
type ActivityRepository struct {
	mu    sync.RWMutex
	items []domain.Activity
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

func (r *ActivityRepository) Insert(_ context.Context, a *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *a)
	return nil
}

func (r *ActivityRepository) ListRecent(_ context.Context, limit int) ([]domain.Activity, error) {
	r.mu.RLock()
	out := append([]domain.Activity(nil), r.items...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
