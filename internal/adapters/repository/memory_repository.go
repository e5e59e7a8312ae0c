package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vaneapp/vane/internal/core/domain"
)

// InMemoryHabitRepository backs the handler tests and the e2e harness.
type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[habit.ID] = habit.Clone()
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return habit.Clone(), nil
}

func (r *InMemoryHabitRepository) List(ctx context.Context) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		habits = append(habits, h.Clone())
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].ID < habits[j].ID
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}

	r.store[habit.ID] = habit.Clone()
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	return nil
}

// InMemoryEntryRepository keys entries by date, one record per date.
type InMemoryEntryRepository struct {
	store map[string]*domain.Entry

	mu sync.RWMutex
}

func NewInMemoryEntryRepository() *InMemoryEntryRepository {
	return &InMemoryEntryRepository{
		store: make(map[string]*domain.Entry),
	}
}

func (r *InMemoryEntryRepository) GetByDate(ctx context.Context, date string) (*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.store[date]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return entry.Clone(), nil
}

func (r *InMemoryEntryRepository) Upsert(ctx context.Context, entry *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.store[entry.Date]; ok {
		entry.ID = existing.ID
	} else if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	r.store[entry.Date] = entry.Clone()
	return nil
}

func (r *InMemoryEntryRepository) ListByMonth(ctx context.Context, year, month int) ([]*domain.Entry, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []*domain.Entry
	for date, e := range r.store {
		day, err := domain.ParseISODate(date)
		if err != nil {
			continue
		}
		if day.Before(start) || !day.Before(end) {
			continue
		}
		entries = append(entries, e.Clone())
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	return entries, nil
}
