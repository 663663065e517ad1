package app_test

import (
	"context"
	"testing"

	"calories/internal/app"
	"calories/internal/domain"
)

func TestHistory_BadDays(t *testing.T) {
	svc := app.NewHistoryService(newLedgerService(&mockLedgerRepo{}))
	if _, err := svc.GetDaily(context.Background(), 1, 0); err == nil {
		t.Fatal("expected error for zero days")
	}
}

func TestHistory_GetDaily(t *testing.T) {
	ledgers := newLedgerService(&mockLedgerRepo{})
	ctx := context.Background()

	_, _ = ledgers.AddMeal(ctx, 1, domain.ScaledFood{Name: "lunch", Calories: 700})
	_, _ = ledgers.AddMeal(ctx, 1, domain.ScaledFood{Name: "dinner", Calories: 900})
	_, _ = ledgers.ShiftSelectedDate(ctx, 1, -2)
	_, _ = ledgers.AddMeal(ctx, 1, domain.ScaledFood{Name: "toast", Calories: 100})
	_ = ledgers.SetSelectedDate(ctx, 1, "2026-02-08")
	_ = ledgers.SetDailyGoal(ctx, 1, 1500)

	svc := app.NewHistoryService(ledgers)
	points, err := svc.GetDaily(ctx, 1, 3)
	if err != nil {
		t.Fatalf("GetDaily: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	want := []struct {
		day      string
		calories int
		over     bool
	}{
		{"2026-02-06", 100, false},
		{"2026-02-07", 0, false},
		{"2026-02-08", 1600, true},
	}
	for i, w := range want {
		p := points[i]
		if p.Day != w.day || p.Calories != w.calories || p.OverGoal != w.over {
			t.Errorf("point %d = %+v; want %+v", i, p, w)
		}
		if p.Goal == nil || *p.Goal != 1500 {
			t.Errorf("point %d goal = %v; want 1500", i, p.Goal)
		}
	}
}

func TestHistory_CapsDays(t *testing.T) {
	svc := app.NewHistoryService(newLedgerService(&mockLedgerRepo{}))
	points, err := svc.GetDaily(context.Background(), 1, 1000)
	if err != nil {
		t.Fatalf("GetDaily: %v", err)
	}
	if len(points) != 366 {
		t.Fatalf("expected 366 points, got %d", len(points))
	}
	if points[0].Goal != nil {
		t.Fatal("expected no goal")
	}
}
