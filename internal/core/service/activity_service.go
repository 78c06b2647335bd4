package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/saintdavies/property-console/internal/core/domain"
	"github.com/saintdavies/property-console/internal/core/ports"
	"github.com/saintdavies/property-console/internal/pkg/metrics"
)

const maxActivityPage = 200

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process persists a single activity entry.
func (s *activityService) Process(ctx context.Context, a domain.Activity) error {
	start := time.Now()
	defer func() { metrics.ActivityProcessingDuration.Observe(time.Since(start).Seconds()) }()

	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &a); err != nil {
		metrics.ActivityProcessedTotal.WithLabelValues(string(a.Action), "error").Inc()
		return fmt.Errorf("process activity: %w", err)
	}

	metrics.ActivityProcessedTotal.WithLabelValues(string(a.Action), "ok").Inc()
	s.log.Debug().
		Str("email", a.Email).
		Str("action", string(a.Action)).
		Msg("activity recorded")
	return nil
}

// RecentActivity clamps limit and reads the newest entries.
func RecentActivity(ctx context.Context, repo ports.ActivityRepository, limit int) ([]domain.Activity, error) {
	if limit <= 0 || limit > maxActivityPage {
		limit = maxActivityPage
	}
	items, err := repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return items, nil
}
