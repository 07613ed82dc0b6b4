package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/veritasmainapp/VERITAS-AI/internal/config"
	"github.com/veritasmainapp/VERITAS-AI/internal/models"
)

// ErrNotFound is returned when no history entry carries the requested id.
var ErrNotFound = errors.New("history entry not found")

// Store keeps the log of past scans, newest first.
type Store interface {
	// Load returns every recorded entry, newest first.
	Load(ctx context.Context) ([]models.HistoryEntry, error)

	// Append records a finished analysis at the head of the log and
	// returns the stored entry.
	Append(ctx context.Context, result models.AnalysisResult, url string) (models.HistoryEntry, error)

	// Get returns the entry with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*models.HistoryEntry, error)

	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
}

// New creates the history backend named by the configuration.
func New(cfg *config.Config, logger *logrus.Logger) (Store, error) {
	switch cfg.History.Backend {
	case "file":
		return NewFileStore(cfg.History.FilePath, logger), nil
	case "postgres":
		return NewPostgresStore(cfg.History.DatabaseURL, logger)
	default:
		return nil, fmt.Errorf("unknown history backend: %s", cfg.History.Backend)
	}
}
