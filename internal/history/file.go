package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/veritasmainapp/VERITAS-AI/internal/models"
)

// FileStore keeps the scan log in a single pretty-printed JSON file. Every
// append rewrites the whole file with the newest entry first. Writes land
// via a temp file and rename, so a crash mid-write never corrupts an
// existing log. Appends are serialized in-process; concurrent processes
// pointed at the same file will still race whole-file.
type FileStore struct {
	path   string
	logger *logrus.Logger

	mu sync.Mutex
}

// NewFileStore creates a store backed by the JSON file at path. The file
// does not need to exist yet.
func NewFileStore(path string, logger *logrus.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Load returns all entries, newest first. A missing or unreadable file is
// treated as an empty log, never an error.
func (s *FileStore) Load(ctx context.Context) ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(), nil
}

// Append inserts the result at the head of the log and rewrites the file.
func (s *FileStore) Append(ctx context.Context, result models.AnalysisResult, url string) (models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.loadLocked()
	entry := models.NewHistoryEntry(result, url)
	entries = append([]models.HistoryEntry{entry}, entries...)

	// Older logs predate entry ids; assign them on the next rewrite so
	// every entry stays addressable.
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
	}

	if err := s.writeLocked(entries); err != nil {
		return models.HistoryEntry{}, err
	}
	return entry, nil
}

// Get returns the entry with the given id.
func (s *FileStore) Get(ctx context.Context, id string) (*models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.loadLocked() {
		if entry.ID == id {
			found := entry
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// Ping reports whether the log's directory exists and is a directory.
func (s *FileStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("history directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("history path %s is not inside a directory", s.path)
	}
	return nil
}

func (s *FileStore) loadLocked() []models.HistoryEntry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).WithField("path", s.path).Warn("History file unreadable, starting with empty log")
		}
		return []models.HistoryEntry{}
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.WithError(err).WithField("path", s.path).Warn("History file corrupt, starting with empty log")
		return []models.HistoryEntry{}
	}
	return entries
}

func (s *FileStore) writeLocked(entries []models.HistoryEntry) error {
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp history file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}
