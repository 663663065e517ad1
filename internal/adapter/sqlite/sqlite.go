// Package sqlite implements the domain repositories on a single SQLite file
// through gorm. It is meant for single-node deployments without PostgreSQL.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"calories/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type userRow struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type sessionRow struct {
	Token     string    `gorm:"primaryKey"`
	UserID    int64     `gorm:"index;not null"`
	UserAgent string    `gorm:"not null;default:''"`
	IP        string    `gorm:"not null;default:''"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

func (sessionRow) TableName() string { return "sessions" }

type ledgerRow struct {
	UserID       int64 `gorm:"primaryKey;autoIncrement:false"`
	DailyGoal    *int
	SelectedDate string `gorm:"not null"`
	UpdatedAt    time.Time
}

func (ledgerRow) TableName() string { return "ledgers" }

type mealRow struct {
	UserID       int64  `gorm:"primaryKey;autoIncrement:false;index:idx_meal_user_date,priority:1"`
	ID           string `gorm:"primaryKey"`
	Position     int    `gorm:"not null"`
	Name         string `gorm:"not null"`
	Calories     int    `gorm:"not null"`
	Protein      float64
	Carbs        float64
	Fat          float64
	ServingLabel string
	Category     string
	LoggedDate   string `gorm:"not null;index:idx_meal_user_date,priority:2"`
}

func (mealRow) TableName() string { return "meal_entries" }

// DB wraps a *gorm.DB and implements domain repository interfaces.
type DB struct {
	gorm *gorm.DB
}

// Ensure interfaces are met.
var _ domain.LedgerRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// Open opens (or creates) the SQLite database at path and migrates it.
func Open(path string) (*DB, error) {
	g, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	s, err := g.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer.
	s.SetMaxOpenConns(1)

	if err := g.AutoMigrate(&userRow{}, &sessionRow{}, &ledgerRow{}, &mealRow{}); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &DB{gorm: g}, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	s, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return s.Close()
}

// LoadLedger reads the ledger state of a user, or nil if none was saved.
func (d *DB) LoadLedger(ctx context.Context, userID int64) (*domain.LedgerState, error) {
	var state *domain.LedgerState
	err := d.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row ledgerRow
		err := tx.First(&row, "user_id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var meals []mealRow
		if err := tx.Where("user_id = ?", userID).Order("position").Find(&meals).Error; err != nil {
			return err
		}

		state = &domain.LedgerState{
			Entries:      make([]domain.MealEntry, 0, len(meals)),
			DailyGoal:    row.DailyGoal,
			SelectedDate: row.SelectedDate,
		}
		for _, m := range meals {
			state.Entries = append(state.Entries, domain.MealEntry{
				ScaledFood: domain.ScaledFood{
					Name:         m.Name,
					Calories:     m.Calories,
					Protein:      m.Protein,
					Carbs:        m.Carbs,
					Fat:          m.Fat,
					ServingLabel: m.ServingLabel,
					Category:     m.Category,
				},
				ID:         m.ID,
				LoggedDate: m.LoggedDate,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// SaveLedger replaces the stored ledger of a user in a single transaction.
func (d *DB) SaveLedger(ctx context.Context, userID int64, state domain.LedgerState) error {
	return d.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := ledgerRow{
			UserID:       userID,
			DailyGoal:    state.DailyGoal,
			SelectedDate: state.SelectedDate,
			UpdatedAt:    time.Now().UTC(),
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert ledger: %w", err)
		}

		if err := tx.Where("user_id = ?", userID).Delete(&mealRow{}).Error; err != nil {
			return fmt.Errorf("clear entries: %w", err)
		}
		if len(state.Entries) == 0 {
			return nil
		}

		meals := make([]mealRow, 0, len(state.Entries))
		for i, e := range state.Entries {
			meals = append(meals, mealRow{
				UserID:       userID,
				ID:           e.ID,
				Position:     i,
				Name:         e.Name,
				Calories:     e.Calories,
				Protein:      e.Protein,
				Carbs:        e.Carbs,
				Fat:          e.Fat,
				ServingLabel: e.ServingLabel,
				Category:     e.Category,
				LoggedDate:   e.LoggedDate,
			})
		}
		if err := tx.CreateInBatches(meals, 100).Error; err != nil {
			return fmt.Errorf("insert entries: %w", err)
		}
		return nil
	})
}

// GetByUsername retrieves a user by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return d.findUser(ctx, "username = ?", username)
}

// GetByID retrieves a user by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return d.findUser(ctx, "id = ?", id)
}

func (d *DB) findUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var row userRow
	err := d.gorm.WithContext(ctx).Where(query, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: row.ID, Username: row.Username, PasswordHash: row.PasswordHash, CreatedAt: row.CreatedAt}, nil
}

// Create creates a new user.
func (d *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	row := userRow{Username: username, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	if err := d.gorm.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, err
	}
	return &domain.User{ID: row.ID, Username: row.Username, PasswordHash: row.PasswordHash, CreatedAt: row.CreatedAt}, nil
}

// Count returns the total number of users.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int64
	err := d.gorm.WithContext(ctx).Model(&userRow{}).Count(&n).Error
	return int(n), err
}

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	return r.db.gorm.WithContext(ctx).Create(&sessionRow{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}).Error
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var row sessionRow
	err := r.db.gorm.WithContext(ctx).First(&row, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		Token:     row.Token,
		UserID:    row.UserID,
		UserAgent: row.UserAgent,
		IP:        row.IP,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	return r.db.gorm.WithContext(ctx).Where("token = ?", token).Delete(&sessionRow{}).Error
}

// DeleteExpired deletes all expired sessions. Times are stored in UTC so
// they compare correctly as text.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	return r.db.gorm.WithContext(ctx).Where("expires_at < ?", time.Now().UTC()).Delete(&sessionRow{}).Error
}
