package app

import (
	"context"
	"errors"
	"time"

	"calories/internal/domain"
)

const maxHistoryDays = 366

// HistoryService encapsulates per-day calorie history use cases.
type HistoryService struct {
	ledgers *LedgerService
}

// NewHistoryService creates a HistoryService reading from the given ledgers.
func NewHistoryService(ledgers *LedgerService) *HistoryService {
	return &HistoryService{ledgers: ledgers}
}

// DayPoint is a single data point returned by GetDaily.
type DayPoint struct {
	Day      string `json:"day"`
	Calories int    `json:"calories"`
	Meals    int    `json:"meals"`
	Goal     *int   `json:"goal"`
	OverGoal bool   `json:"overGoal"`
}

// GetDaily returns calorie totals for the days days ending at the user's
// selected date, oldest first. The current goal is applied to every day.
func (s *HistoryService) GetDaily(ctx context.Context, userID int64, days int) ([]DayPoint, error) {
	if days <= 0 {
		return nil, errors.New("days must be > 0")
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}

	var points []DayPoint
	err := s.ledgers.view(ctx, userID, func(l *domain.Ledger) {
		end, _ := time.Parse(domain.DayLayout, l.SelectedDate())
		goal, hasGoal := l.DailyGoal()

		points = make([]DayPoint, 0, days)
		for i := days - 1; i >= 0; i-- {
			day := end.AddDate(0, 0, -i).Format(domain.DayLayout)
			p := DayPoint{
				Day:      day,
				Calories: l.TotalForDay(day),
				Meals:    len(l.MealsForDay(day)),
			}
			if hasGoal {
				g := goal
				p.Goal = &g
				p.OverGoal = p.Calories > goal
			}
			points = append(points, p)
		}
	})
	return points, err
}
