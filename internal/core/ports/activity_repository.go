package ports

import (
	"context"

	"github.com/saintdavies/property-console/internal/core/domain"
)

// ActivityRepository handles persistence of the user activity trail.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
	// ListRecent returns at most limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.Activity, error)
}
