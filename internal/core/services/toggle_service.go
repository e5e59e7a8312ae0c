package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vaneapp/vane/internal/core/domain"
	"github.com/vaneapp/vane/internal/core/store"
)

// ErrToggleInFlight signals that a toggle for the same habit id has not
// finished yet. The request is rejected without effect.
var ErrToggleInFlight = errors.New("toggle already in flight for this habit")

// ToggleService runs the completion toggle workflow: optimistic local
// update, persistence of the day's entry and the habit's statistics, and
// rollback of the local state when persistence fails.
//
// Per habit id the service is a two-state machine, Idle -> Animating ->
// Idle. While a given id is Animating, further toggles on that id are
// rejected; toggles on other ids proceed independently. A toggle once
// started runs to completion or rollback.
type ToggleService struct {
	store   *store.Store
	gateway domain.Gateway
	now     func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewToggleService(st *store.Store, gw domain.Gateway) *ToggleService {
	return NewToggleServiceWithClock(st, gw, time.Now)
}

// NewToggleServiceWithClock injects the clock; tests pin it for
// deterministic dates and scores.
func NewToggleServiceWithClock(st *store.Store, gw domain.Gateway, now func() time.Time) *ToggleService {
	return &ToggleService{
		store:    st,
		gateway:  gw,
		now:      now,
		inFlight: make(map[string]struct{}),
	}
}

type ToggleResult struct {
	Habit *domain.Habit
	Entry *domain.Entry
	// Completed is the new done state: true when the toggle completed the
	// habit, false when it reverted a completion.
	Completed bool
}

// IsAnimating reports whether a toggle for the id is currently in flight.
func (s *ToggleService) IsAnimating(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inFlight[id]
	return ok
}

func (s *ToggleService) begin(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[id]; ok {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *ToggleService) end(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

// Toggle flips the habit's completion state for today.
//
// The done flag is updated in the local store before any network round
// trip, so the UI reflects intent immediately. If persisting the entry or
// the habit statistics fails, the flag is restored to its pre-toggle value
// and the error is surfaced; the local state never diverges from the last
// persisted state for longer than one failed round trip.
func (s *ToggleService) Toggle(ctx context.Context, id string) (*ToggleResult, error) {
	if !s.begin(id) {
		return nil, ErrToggleInFlight
	}
	defer s.end(id)

	prev, ok := s.store.Get(id)
	if !ok {
		return nil, domain.ErrHabitNotFound
	}

	isCompleting := !prev.Done

	// Optimistic update.
	s.store.SetDone(id, isCompleting)

	result, err := s.persist(ctx, prev, isCompleting)
	if err != nil {
		s.store.SetDone(id, prev.Done)
		return nil, err
	}

	s.store.Apply(result.Habit)
	return result, nil
}

func (s *ToggleService) persist(ctx context.Context, prev *domain.Habit, isCompleting bool) (*ToggleResult, error) {
	now := s.now()
	today, err := domain.ISODateOf(now)
	if err != nil {
		return nil, err
	}

	entry, err := s.resolveEntry(ctx, today)
	if err != nil {
		return nil, err
	}

	updated := prev.Clone()
	if isCompleting {
		updated.ApplyCompletion(today)
		entry.AddCompleted(updated.ID, updated.Name, now, updated.Stats.Streak)
	} else {
		updated.RevertCompletion()
		entry.RemoveCompleted(updated.ID)
	}

	savedEntry, err := s.gateway.UpsertEntry(ctx, today, entry)
	if err != nil {
		return nil, err
	}

	savedHabit, err := s.gateway.UpsertHabit(ctx, updated.ID, updated)
	if err != nil {
		return nil, err
	}

	return &ToggleResult{Habit: savedHabit, Entry: savedEntry, Completed: isCompleting}, nil
}

// resolveEntry fetches today's entry, synthesizing a fresh one when none
// exists yet. Entry absence is recovered here; any other gateway error
// propagates.
func (s *ToggleService) resolveEntry(ctx context.Context, date string) (*domain.Entry, error) {
	entry, err := s.gateway.GetEntry(ctx, date)
	if err == nil {
		return entry, nil
	}
	if errors.Is(err, domain.ErrEntryNotFound) {
		return domain.NewEntryForDate(date, s.store.List())
	}
	return nil, err
}
