package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"calories/internal/domain"
)

// errUnchanged lets an update callback skip the save when nothing changed.
var errUnchanged = errors.New("ledger unchanged")

// LedgerService owns one domain.Ledger per user. A ledger is loaded from the
// repository on first use, every mutation is applied to a copy and the copy
// only replaces the live ledger after the whole state has been saved.
type LedgerService struct {
	repo domain.LedgerRepository
	now  func() time.Time

	mu      sync.Mutex
	ledgers map[int64]*ledgerSlot
}

type ledgerSlot struct {
	mu     sync.Mutex
	ledger *domain.Ledger
}

// Summary is the selected-day view rendered by clients.
type Summary struct {
	domain.Progress
	Meals []domain.MealEntry `json:"meals"`
}

// NewLedgerService creates a LedgerService backed by the given repository.
func NewLedgerService(repo domain.LedgerRepository) *LedgerService {
	return &LedgerService{
		repo:    repo,
		now:     time.Now,
		ledgers: make(map[int64]*ledgerSlot),
	}
}

// WithClock replaces the clock used to pick the default selected date.
func (s *LedgerService) WithClock(now func() time.Time) *LedgerService {
	s.now = now
	return s
}

// Summary returns progress and meals for the user's selected date.
func (s *LedgerService) Summary(ctx context.Context, userID int64) (*Summary, error) {
	var out *Summary
	err := s.view(ctx, userID, func(l *domain.Ledger) {
		out = &Summary{Progress: l.Progress(), Meals: l.TodaysMeals()}
	})
	return out, err
}

// TodaysMeals returns the meals logged on the user's selected date.
func (s *LedgerService) TodaysMeals(ctx context.Context, userID int64) ([]domain.MealEntry, error) {
	var out []domain.MealEntry
	err := s.view(ctx, userID, func(l *domain.Ledger) {
		out = l.TodaysMeals()
	})
	return out, err
}

// AddFood scales food to portionGrams and logs it on the selected date.
func (s *LedgerService) AddFood(ctx context.Context, userID int64, food domain.FoodRecord, portionGrams float64) (domain.MealEntry, error) {
	scaled, err := domain.Scale(food, portionGrams)
	if err != nil {
		return domain.MealEntry{}, err
	}
	return s.AddMeal(ctx, userID, scaled)
}

// AddMeal logs an already scaled food on the selected date.
func (s *LedgerService) AddMeal(ctx context.Context, userID int64, food domain.ScaledFood) (domain.MealEntry, error) {
	var entry domain.MealEntry
	err := s.update(ctx, userID, func(l *domain.Ledger) error {
		var err error
		entry, err = l.AddMeal(food)
		return err
	})
	return entry, err
}

// RemoveMeal deletes a logged meal and reports whether it existed.
func (s *LedgerService) RemoveMeal(ctx context.Context, userID int64, id string) (bool, error) {
	err := s.update(ctx, userID, func(l *domain.Ledger) error {
		if !l.RemoveMeal(id) {
			return errUnchanged
		}
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return false, nil
	}
	return err == nil, err
}

// SetDailyGoal replaces the user's daily calorie goal.
func (s *LedgerService) SetDailyGoal(ctx context.Context, userID int64, goal int) error {
	return s.update(ctx, userID, func(l *domain.Ledger) error {
		return l.SetDailyGoal(goal)
	})
}

// SetSelectedDate moves the user's view cursor to date.
func (s *LedgerService) SetSelectedDate(ctx context.Context, userID int64, date string) error {
	return s.update(ctx, userID, func(l *domain.Ledger) error {
		return l.SetSelectedDate(date)
	})
}

// ShiftSelectedDate moves the user's view cursor by days.
func (s *LedgerService) ShiftSelectedDate(ctx context.Context, userID int64, days int) (string, error) {
	var date string
	err := s.update(ctx, userID, func(l *domain.Ledger) error {
		var err error
		date, err = l.ShiftSelectedDate(days)
		return err
	})
	return date, err
}

// Dispose drops the cached ledger for the user. The persisted state is kept
// and will be loaded again on next use. The slot itself stays registered so
// a request already waiting on it reloads instead of racing a fresh slot.
func (s *LedgerService) Dispose(userID int64) {
	s.mu.Lock()
	sl, ok := s.ledgers[userID]
	s.mu.Unlock()
	if !ok {
		return
	}
	sl.mu.Lock()
	sl.ledger = nil
	sl.mu.Unlock()
}

func (s *LedgerService) slot(userID int64) *ledgerSlot {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.ledgers[userID]
	if !ok {
		sl = &ledgerSlot{}
		s.ledgers[userID] = sl
	}
	return sl
}

// load returns the live ledger for the slot, reading it from the repository
// the first time. The caller must hold sl.mu.
func (s *LedgerService) load(ctx context.Context, userID int64, sl *ledgerSlot) (*domain.Ledger, error) {
	if sl.ledger != nil {
		return sl.ledger, nil
	}

	state, err := s.repo.LoadLedger(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if state == nil {
		def := domain.DefaultLedgerState(s.today())
		state = &def
	}

	l, err := domain.NewLedger(*state)
	if err != nil {
		return nil, err
	}
	sl.ledger = l
	return l, nil
}

func (s *LedgerService) view(ctx context.Context, userID int64, fn func(*domain.Ledger)) error {
	sl := s.slot(userID)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	l, err := s.load(ctx, userID, sl)
	if err != nil {
		return err
	}
	fn(l)
	return nil
}

func (s *LedgerService) update(ctx context.Context, userID int64, fn func(*domain.Ledger) error) error {
	sl := s.slot(userID)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	cur, err := s.load(ctx, userID, sl)
	if err != nil {
		return err
	}

	next := cur.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.repo.SaveLedger(ctx, userID, next.State()); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	sl.ledger = next
	return nil
}

func (s *LedgerService) today() string {
	return s.now().In(time.Local).Format(domain.DayLayout)
}
