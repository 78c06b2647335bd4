package ports

import (
	"context"

	"github.com/saintdavies/property-console/internal/core/domain"
)

// ActivityRecorder accepts activity entries without blocking the caller.
type ActivityRecorder interface {
	Enqueue(activity domain.Activity)
}

// ActivityService persists activity entries taken off the queue.
type ActivityService interface {
	Process(ctx context.Context, activity domain.Activity) error
}
