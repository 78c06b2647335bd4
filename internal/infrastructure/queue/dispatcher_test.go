package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/saintdavies/property-console/internal/core/domain"
)

type recordingService struct {
	mu    sync.Mutex
	items map[string][]domain.ActivityAction
	total int
}

func newRecordingService() *recordingService {
	return &recordingService{items: make(map[string][]domain.ActivityAction)}
}

func (s *recordingService) Process(_ context.Context, a domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[a.Email] = append(s.items[a.Email], a.Action)
	s.total++
	return nil
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, newRecordingService(), zerolog.Nop())
	for _, email := range []string{"a@x.com", "b@x.com", "tenant@saintdavies.com"} {
		first := d.shardIndex(email)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(email); got != first {
				t.Fatalf("shard for %s moved from %d to %d", email, first, got)
			}
		}
		if first < 0 || first >= 4 {
			t.Fatalf("shard %d out of range", first)
		}
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, newRecordingService(), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_PreservesPerUserOrderAndDrains(t *testing.T) {
	svc := newRecordingService()
	d := NewDispatcher(3, svc, zerolog.Nop())

	// Enqueue before starting so everything is still buffered at shutdown.
	users := []string{"landlord@saintdavies.com", "tenant@saintdavies.com", "agent@saintdavies.com"}
	for i := 0; i < 20; i++ {
		for _, u := range users {
			action := domain.ActivityLogin
			if i%2 == 1 {
				action = domain.ActivityLogout
			}
			d.Enqueue(domain.Activity{ID: fmt.Sprintf("%s-%d", u, i), Email: u, Action: action})
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()
	d.Wait()

	if svc.total != 60 {
		t.Fatalf("expected 60 processed entries, got %d", svc.total)
	}
	for _, u := range users {
		got := svc.items[u]
		for i, action := range got {
			want := domain.ActivityLogin
			if i%2 == 1 {
				want = domain.ActivityLogout
			}
			if action != want {
				t.Fatalf("%s: entry %d out of order: %s", u, i, action)
			}
		}
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	svc := newRecordingService()
	d := NewDispatcher(1, svc, zerolog.Nop())

	for i := 0; i < channelBuffer+10; i++ {
		d.Enqueue(domain.Activity{Email: "a@x.com", Action: domain.ActivityLogin})
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected a full buffer of %d, got %d", channelBuffer, got)
	}
}
