package services

import (
	"context"
	"errors"
	"time"

	"github.com/vaneapp/vane/internal/core/domain"
	"github.com/vaneapp/vane/internal/core/store"
)

// HabitService covers the habit lifecycle on the client side: create and
// edit through the form boundary, delete, and refreshing the local cache
// from the gateway. Validation happens before any gateway call.
type HabitService struct {
	store   *store.Store
	gateway domain.Gateway
	now     func() time.Time
}

func NewHabitService(st *store.Store, gw domain.Gateway) *HabitService {
	return NewHabitServiceWithClock(st, gw, time.Now)
}

func NewHabitServiceWithClock(st *store.Store, gw domain.Gateway, now func() time.Time) *HabitService {
	return &HabitService{store: st, gateway: gw, now: now}
}

type CreateHabitInput struct {
	Name        string
	Description string
	Days        []domain.Weekday
}

type UpdateHabitInput struct {
	ID          string
	Name        string
	Description string
	Days        []domain.Weekday
}

// Refresh reloads the habit list from the gateway and derives each habit's
// done flag for today from today's entry membership. The entry is the
// source of truth; the cached done flag is only a read-through of it.
func (s *HabitService) Refresh(ctx context.Context) error {
	habits, err := s.gateway.ListHabits(ctx)
	if err != nil {
		return err
	}

	today, err := domain.ISODateOf(s.now())
	if err != nil {
		return err
	}

	entry, err := s.gateway.GetEntry(ctx, today)
	if err != nil && !errors.Is(err, domain.ErrEntryNotFound) {
		return err
	}

	for _, h := range habits {
		if entry != nil {
			h.Done = entry.IsCompleted(h.ID)
		} else {
			h.Done = false
		}
	}

	s.store.ReplaceAll(habits)
	return nil
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.Name, input.Description, input.Days)
	if err != nil {
		return nil, err
	}

	created, err := s.gateway.CreateHabit(ctx, habit)
	if err != nil {
		return nil, err
	}

	s.store.Add(created)
	return created, nil
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, ok := s.store.Get(input.ID)
	if !ok {
		return nil, domain.ErrHabitNotFound
	}

	if err := habit.Update(input.Name, input.Description, input.Days); err != nil {
		return nil, err
	}

	saved, err := s.gateway.UpsertHabit(ctx, habit.ID, habit)
	if err != nil {
		return nil, err
	}

	s.store.Apply(saved)
	return saved, nil
}

func (s *HabitService) Delete(ctx context.Context, id string) error {
	if err := s.gateway.DeleteHabit(ctx, id); err != nil {
		return err
	}
	s.store.Remove(id)
	return nil
}

// List returns the cached habits in display order.
func (s *HabitService) List() []*domain.Habit {
	return s.store.List()
}
