package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"calories/internal/domain"

	"github.com/lib/pq"
)

// LoadLedger reads the ledger state of a user, or nil if none was saved.
func (d *DB) LoadLedger(ctx context.Context, userID int64) (*domain.LedgerState, error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	var (
		goal  sql.NullInt64
		state domain.LedgerState
	)
	err = tx.QueryRowContext(ctx,
		"SELECT daily_goal, selected_date FROM ledgers WHERE user_id=$1;", userID,
	).Scan(&goal, &state.SelectedDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if goal.Valid {
		g := int(goal.Int64)
		state.DailyGoal = &g
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT id, name, calories, protein, carbs, fat, serving_label, category, logged_date FROM meal_entries WHERE user_id=$1 ORDER BY position;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	state.Entries = make([]domain.MealEntry, 0)
	for rows.Next() {
		var e domain.MealEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Calories, &e.Protein, &e.Carbs, &e.Fat, &e.ServingLabel, &e.Category, &e.LoggedDate); err != nil {
			return nil, err
		}
		state.Entries = append(state.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveLedger replaces the stored ledger of a user in a single transaction.
func (d *DB) SaveLedger(ctx context.Context, userID int64, state domain.LedgerState) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	var goal sql.NullInt64
	if state.DailyGoal != nil {
		goal = sql.NullInt64{Int64: int64(*state.DailyGoal), Valid: true}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ledgers(user_id, daily_goal, selected_date, updated_at) VALUES($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET daily_goal=EXCLUDED.daily_goal, selected_date=EXCLUDED.selected_date, updated_at=EXCLUDED.updated_at;`,
		userID, goal, state.SelectedDate, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("upsert ledger: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM meal_entries WHERE user_id=$1;", userID); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	if len(state.Entries) > 0 {
		stmt, err := tx.PrepareContext(ctx, pq.CopyIn("meal_entries",
			"user_id", "id", "position", "name", "calories", "protein", "carbs", "fat", "serving_label", "category", "logged_date"))
		if err != nil {
			return fmt.Errorf("copy entries: %w", err)
		}
		for i, e := range state.Entries {
			if _, err := stmt.ExecContext(ctx, userID, e.ID, i, e.Name, e.Calories, e.Protein, e.Carbs, e.Fat, e.ServingLabel, e.Category, e.LoggedDate); err != nil {
				_ = stmt.Close()
				return fmt.Errorf("copy entries: %w", err)
			}
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("copy entries: %w", err)
		}
		if err := stmt.Close(); err != nil {
			return fmt.Errorf("copy entries: %w", err)
		}
	}

	return tx.Commit()
}
