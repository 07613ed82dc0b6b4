package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/veritasmainapp/VERITAS-AI/internal/models"
)

// PostgresStore keeps the scan log in a relational table. Unlike the file
// backend it scales past a single process, at the cost of needing a
// database. Ordering newest-first comes from the created_at index rather
// than physical position.
type PostgresStore struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewPostgresStore connects to the database, runs the schema migration and
// returns the store.
func NewPostgresStore(databaseURL string, logger *logrus.Logger) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(&models.HistoryRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history table: %w", err)
	}

	logger.Info("History database connection established")
	return &PostgresStore{db: db, logger: logger}, nil
}

// Load returns every recorded entry, newest first.
func (s *PostgresStore) Load(ctx context.Context) ([]models.HistoryEntry, error) {
	var records []models.HistoryRecord
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	entries := make([]models.HistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, record.ToEntry())
	}
	return entries, nil
}

// Append stores a finished analysis as a new row.
func (s *PostgresStore) Append(ctx context.Context, result models.AnalysisResult, url string) (models.HistoryEntry, error) {
	entry := models.NewHistoryEntry(result, url)
	record, err := models.RecordFromEntry(entry)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("failed to encode history entry: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return models.HistoryEntry{}, fmt.Errorf("failed to store history entry: %w", err)
	}
	return entry, nil
}

// Get returns the entry with the given id, or ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, id string) (*models.HistoryEntry, error) {
	var record models.HistoryRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load history entry: %w", err)
	}

	entry := record.ToEntry()
	return &entry, nil
}

// Ping reports whether the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the database connections.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
