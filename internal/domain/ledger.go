package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DayLayout is the calendar date format used for logged and selected dates.
const DayLayout = "2006-01-02"

var (
	// ErrInvalidGoal is returned for a daily goal that is not a positive integer.
	ErrInvalidGoal = errors.New("daily goal must be a positive whole number of calories")
	// ErrInvalidMeal is returned when a scaled food is malformed.
	ErrInvalidMeal = errors.New("meal must have a name and non-negative nutrients")
	// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")
)

// MealEntry is a logged ScaledFood. ID and LoggedDate are assigned by the Ledger.
type MealEntry struct {
	ScaledFood
	ID         string `json:"id"`
	LoggedDate string `json:"loggedDate"`
}

// LedgerState is the persisted form of a Ledger. A nil DailyGoal means no
// goal has been configured.
type LedgerState struct {
	Entries      []MealEntry `json:"entries"`
	DailyGoal    *int        `json:"dailyGoal"`
	SelectedDate string      `json:"selectedDate"`
}

// DefaultLedgerState is the state used when nothing has been persisted yet.
func DefaultLedgerState(today string) LedgerState {
	return LedgerState{Entries: []MealEntry{}, SelectedDate: today}
}

// Clone returns a deep copy of s.
func (s LedgerState) Clone() LedgerState {
	out := LedgerState{
		Entries:      make([]MealEntry, len(s.Entries)),
		SelectedDate: s.SelectedDate,
	}
	copy(out.Entries, s.Entries)
	if s.DailyGoal != nil {
		g := *s.DailyGoal
		out.DailyGoal = &g
	}
	return out
}

// LedgerRepository is the port for ledger persistence. LoadLedger returns
// nil, nil when nothing has been saved for the user. SaveLedger replaces the
// stored state as a whole or not at all.
type LedgerRepository interface {
	LoadLedger(ctx context.Context, userID int64) (*LedgerState, error)
	SaveLedger(ctx context.Context, userID int64, state LedgerState) error
}

// Ledger owns the logged meals, the daily goal and the selected date cursor.
// It is not safe for concurrent use.
type Ledger struct {
	entries      []MealEntry
	dailyGoal    *int
	selectedDate string

	ids   map[string]struct{}
	newID func() string
}

// NewLedger restores a Ledger from state. The state is copied.
func NewLedger(state LedgerState) (*Ledger, error) {
	if err := ValidateDate(state.SelectedDate); err != nil {
		return nil, fmt.Errorf("restore ledger: %w", err)
	}
	if state.DailyGoal != nil && *state.DailyGoal <= 0 {
		return nil, fmt.Errorf("restore ledger: %w", ErrInvalidGoal)
	}

	s := state.Clone()
	l := &Ledger{
		entries:      s.Entries,
		dailyGoal:    s.DailyGoal,
		selectedDate: s.SelectedDate,
		ids:          make(map[string]struct{}, len(s.Entries)),
		newID:        uuid.NewString,
	}
	for _, e := range l.entries {
		if e.ID == "" {
			return nil, fmt.Errorf("restore ledger: entry without id: %w", ErrInvalidMeal)
		}
		if _, dup := l.ids[e.ID]; dup {
			return nil, fmt.Errorf("restore ledger: duplicate entry id %q: %w", e.ID, ErrInvalidMeal)
		}
		l.ids[e.ID] = struct{}{}
	}
	return l, nil
}

// State returns a deep copy of the ledger contents for persistence.
func (l *Ledger) State() LedgerState {
	return LedgerState{
		Entries:      l.entries,
		DailyGoal:    l.dailyGoal,
		SelectedDate: l.selectedDate,
	}.Clone()
}

// Clone returns an independent copy of the ledger, including the set of ids
// already handed out.
func (l *Ledger) Clone() *Ledger {
	s := l.State()
	c := &Ledger{
		entries:      s.Entries,
		dailyGoal:    s.DailyGoal,
		selectedDate: s.SelectedDate,
		ids:          make(map[string]struct{}, len(l.ids)),
		newID:        l.newID,
	}
	for id := range l.ids {
		c.ids[id] = struct{}{}
	}
	return c
}

// AddMeal logs food on the selected date and returns the created entry.
func (l *Ledger) AddMeal(food ScaledFood) (MealEntry, error) {
	if err := food.Validate(); err != nil {
		return MealEntry{}, err
	}

	id := l.newID()
	for l.hasID(id) {
		id = l.newID()
	}
	l.ids[id] = struct{}{}

	entry := MealEntry{ScaledFood: food, ID: id, LoggedDate: l.selectedDate}
	l.entries = append(l.entries, entry)
	return entry, nil
}

// RemoveMeal deletes the entry with the given id and reports whether one was
// found. The id stays reserved so it is never handed out again.
func (l *Ledger) RemoveMeal(id string) bool {
	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Ledger) hasID(id string) bool {
	_, ok := l.ids[id]
	return ok
}

// SetDailyGoal replaces the daily calorie goal.
func (l *Ledger) SetDailyGoal(goal int) error {
	if goal <= 0 {
		return ErrInvalidGoal
	}
	l.dailyGoal = &goal
	return nil
}

// DailyGoal returns the configured goal, if any.
func (l *Ledger) DailyGoal() (int, bool) {
	if l.dailyGoal == nil {
		return 0, false
	}
	return *l.dailyGoal, true
}

// SetSelectedDate moves the view cursor. Stored entries are not touched.
func (l *Ledger) SetSelectedDate(date string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	l.selectedDate = date
	return nil
}

// ShiftSelectedDate moves the view cursor by days and returns the new date.
// A shift landing outside years 0000-9999 fails with ErrInvalidDate and
// leaves the cursor unchanged.
func (l *Ledger) ShiftSelectedDate(days int) (string, error) {
	d, _ := time.Parse(DayLayout, l.selectedDate)
	next := d.AddDate(0, 0, days).Format(DayLayout)
	if err := ValidateDate(next); err != nil {
		return l.selectedDate, err
	}
	l.selectedDate = next
	return next, nil
}

// SelectedDate returns the view cursor.
func (l *Ledger) SelectedDate() string {
	return l.selectedDate
}

// TodaysMeals returns the entries logged on the selected date in insertion order.
func (l *Ledger) TodaysMeals() []MealEntry {
	return l.MealsForDay(l.selectedDate)
}

// MealsForDay returns the entries logged on day in insertion order.
func (l *Ledger) MealsForDay(day string) []MealEntry {
	out := make([]MealEntry, 0)
	for _, e := range l.entries {
		if e.LoggedDate == day {
			out = append(out, e)
		}
	}
	return out
}

// TotalCalories sums the calories of TodaysMeals.
func (l *Ledger) TotalCalories() int {
	return l.TotalForDay(l.selectedDate)
}

// TotalForDay sums the calories logged on day.
func (l *Ledger) TotalForDay(day string) int {
	total := 0
	for _, e := range l.entries {
		if e.LoggedDate == day {
			total += e.Calories
		}
	}
	return total
}

// RemainingCalories returns goal minus consumed calories. The boolean is
// false when no goal is configured; a negative value means over budget.
func (l *Ledger) RemainingCalories() (int, bool) {
	goal, ok := l.DailyGoal()
	if !ok {
		return 0, false
	}
	return goal - l.TotalCalories(), true
}

// Progress summarises the selected date against the daily goal.
type Progress struct {
	SelectedDate      string  `json:"selectedDate"`
	DailyGoal         *int    `json:"dailyGoal"`
	TotalCalories     int     `json:"totalCalories"`
	RemainingCalories *int    `json:"remainingCalories"`
	PercentOfGoal     float64 `json:"percentOfGoal"`
	OverGoal          bool    `json:"overGoal"`
	Protein           float64 `json:"protein"`
	Carbs             float64 `json:"carbs"`
	Fat               float64 `json:"fat"`
	MealCount         int     `json:"mealCount"`
}

// Progress computes the summary for the selected date.
func (l *Ledger) Progress() Progress {
	meals := l.TodaysMeals()
	var protein, carbs, fat decimal.Decimal
	for _, m := range meals {
		protein = protein.Add(decimal.NewFromFloat(m.Protein))
		carbs = carbs.Add(decimal.NewFromFloat(m.Carbs))
		fat = fat.Add(decimal.NewFromFloat(m.Fat))
	}

	p := Progress{
		SelectedDate:  l.selectedDate,
		TotalCalories: l.TotalCalories(),
		Protein:       protein.Round(1).InexactFloat64(),
		Carbs:         carbs.Round(1).InexactFloat64(),
		Fat:           fat.Round(1).InexactFloat64(),
		MealCount:     len(meals),
	}
	if goal, ok := l.DailyGoal(); ok {
		remaining := goal - p.TotalCalories
		p.DailyGoal = &goal
		p.RemainingCalories = &remaining
		p.OverGoal = p.TotalCalories > goal
		pct := decimal.NewFromInt(int64(p.TotalCalories)).Mul(hundred).Div(decimal.NewFromInt(int64(goal)))
		p.PercentOfGoal = decimal.Min(pct, hundred).Round(1).InexactFloat64()
	}
	return p
}

// ValidateDate checks that date is a calendar date in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if _, err := time.Parse(DayLayout, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// GoalFromFloat converts a decoded JSON number into a goal, rejecting
// fractional and non-positive values.
func GoalFromFloat(v float64) (int, error) {
	if !finite(v) || v <= 0 || v != float64(int64(v)) || v > float64(math.MaxInt32) {
		return 0, ErrInvalidGoal
	}
	return int(v), nil
}
