package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rlfpro/rocket-fantasy/internal/domain/event"
)

type EventRepository struct {
	mu    sync.RWMutex
	items map[string]event.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{items: make(map[string]event.Event)}
}

func (r *EventRepository) List(_ context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *EventRepository) GetByID(_ context.Context, eventID string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[eventID]
	return e, ok, nil
}

func (r *EventRepository) GetByBallchasingGroupID(_ context.Context, groupID string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.items {
		if e.BallchasingGroupID == groupID {
			return e, true, nil
		}
	}
	return event.Event{}, false, nil
}

func (r *EventRepository) Create(_ context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[e.ID] = e
	return nil
}
