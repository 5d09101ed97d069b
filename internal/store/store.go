// ABOUTME: gorm-backed persistence for credentials, sign history and schedule
// ABOUTME: Opens the sqlite database, migrates models and exposes typed queries

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/models"
)

const (
	errorMessageMissingDataSourceName = "store: missing database data source name"
	errorMessageOpenDatabase          = "store: open sqlite database"
	errorMessageMigrate               = "store: migrate"
)

// ErrMissingDataSourceName indicates the database path was omitted.
var ErrMissingDataSourceName = errors.New(errorMessageMissingDataSourceName)

// Store wraps the database handle
type Store struct {
	db *gorm.DB
}

// OpenDatabase opens the sqlite database at dataSourceName, creating its
// parent directory when it is a file path.
func OpenDatabase(dataSourceName string) (*gorm.DB, error) {
	dsn := strings.TrimSpace(dataSourceName)
	if dsn == "" {
		return nil, ErrMissingDataSourceName
	}

	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("%s: %w", errorMessageOpenDatabase, err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errorMessageOpenDatabase, err)
	}
	return db, nil
}

// AutoMigrate runs database migrations for the storage models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Credential{}, &models.SignLog{}, &models.Schedule{}); err != nil {
		return fmt.Errorf("%s: %w", errorMessageMigrate, err)
	}
	return nil
}

// Open opens and migrates the database
func Open(dataSourceName string) (*Store, error) {
	db, err := OpenDatabase(dataSourceName)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return New(db), nil
}

// New wraps an already migrated database
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Ping verifies the database connection
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewID generates a new globally unique identifier.
func NewID() string {
	return uuid.NewString()
}

// Credentials returns the stored credentials, empty when none were saved
func (s *Store) Credentials(ctx context.Context) (models.Credential, error) {
	var c models.Credential
	err := s.db.WithContext(ctx).First(&c, models.SingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Credential{ID: models.SingletonID}, nil
	}
	if err != nil {
		return c, fmt.Errorf("load credentials: %w", err)
	}
	return c, nil
}

// UpdateCredentials applies mutate to the credential row inside a transaction
func (s *Store) UpdateCredentials(ctx context.Context, mutate func(*models.Credential)) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Credential
		err := tx.First(&c, models.SingletonID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load credentials: %w", err)
		}
		c.ID = models.SingletonID
		mutate(&c)
		if err := tx.Save(&c).Error; err != nil {
			return fmt.Errorf("save credentials: %w", err)
		}
		return nil
	})
}

// AddSignLog records one check-in attempt
func (s *Store) AddSignLog(ctx context.Context, status, trigger, message string) (models.SignLog, error) {
	entry := models.SignLog{
		ID:        NewID(),
		Status:    status,
		Trigger:   trigger,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return entry, fmt.Errorf("add sign log: %w", err)
	}
	return entry, nil
}

// SignLogs returns one page of history, newest first, and the total count
func (s *Store) SignLogs(ctx context.Context, page, limit int) ([]models.SignLog, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.SignLog{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count sign logs: %w", err)
	}

	logs := make([]models.SignLog, 0, limit)
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list sign logs: %w", err)
	}
	return logs, total, nil
}

// SuccessTimes returns the time of every successful check-in, newest first
func (s *Store) SuccessTimes(ctx context.Context) ([]time.Time, error) {
	var times []time.Time
	err := s.db.WithContext(ctx).
		Model(&models.SignLog{}).
		Where("status = ?", models.StatusSuccess).
		Order("created_at DESC").
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, fmt.Errorf("list successful signs: %w", err)
	}
	return times, nil
}

// Schedule returns the schedule row, disabled when none was saved
func (s *Store) Schedule(ctx context.Context) (models.Schedule, error) {
	var sc models.Schedule
	err := s.db.WithContext(ctx).First(&sc, models.SingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Schedule{ID: models.SingletonID}, nil
	}
	if err != nil {
		return sc, fmt.Errorf("load schedule: %w", err)
	}
	return sc, nil
}

// SaveSchedule stores the enabled flag and time, keeping last_run
func (s *Store) SaveSchedule(ctx context.Context, enabled bool, at string) (models.Schedule, error) {
	var saved models.Schedule
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&saved, models.SingletonID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		saved.ID = models.SingletonID
		saved.Enabled = enabled
		saved.Time = at
		return tx.Save(&saved).Error
	})
	if err != nil {
		return saved, fmt.Errorf("save schedule: %w", err)
	}
	return saved, nil
}

// MarkScheduleRun records when the scheduled job last ran
func (s *Store) MarkScheduleRun(ctx context.Context, at time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&models.Schedule{ID: models.SingletonID}).
		Update("last_run", at).Error
	if err != nil {
		return fmt.Errorf("mark schedule run: %w", err)
	}
	return nil
}
