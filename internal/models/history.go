package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimestampLayout is the scan timestamp format (local time, minute precision).
const TimestampLayout = "2006-01-02 15:04"

// HistoryEntry is one persisted scan: a summary of the verdict plus the
// complete result. Entries are ordered newest first and never mutated.
type HistoryEntry struct {
	ID          string         `json:"id"`
	Timestamp   string         `json:"timestamp"`
	URL         string         `json:"url"`
	ProductName string         `json:"product_name"`
	Score       int            `json:"score"`
	Verdict     string         `json:"verdict"`
	FullData    AnalysisResult `json:"full_data"`
}

// NewHistoryEntry builds an entry for a finished scan. The URL is stored as
// submitted, not normalized.
func NewHistoryEntry(result AnalysisResult, url string) HistoryEntry {
	entry := HistoryEntry{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().Format(TimestampLayout),
		URL:         url,
		ProductName: result.ProductName,
		Score:       result.Score,
		Verdict:     result.VerdictBadge,
		FullData:    result,
	}

	// Guard rails for entries built outside the validated pipeline
	if strings.TrimSpace(entry.ProductName) == "" {
		entry.ProductName = "Unknown Product"
	}
	if strings.TrimSpace(entry.Verdict) == "" {
		entry.Verdict = "Unknown"
	}

	return entry
}

// Summary renders the one-line history listing for an entry.
func (e HistoryEntry) Summary() string {
	return fmt.Sprintf("%d/100 - %s", e.Score, e.ProductName)
}

// HistoryRecord is the relational form of a HistoryEntry.
type HistoryRecord struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	Timestamp   string    `json:"timestamp" gorm:"not null"`
	URL         string    `json:"url" gorm:"not null"`
	ProductName string    `json:"product_name"`
	Score       int       `json:"score" gorm:"default:0"`
	Verdict     string    `json:"verdict"`
	FullData    string    `json:"full_data" gorm:"type:jsonb"`
}

func (HistoryRecord) TableName() string { return "history_entries" }

func (r *HistoryRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("entry ID is required")
	}
	if r.URL == "" {
		return fmt.Errorf("entry URL is required")
	}
	return nil
}

func (r *HistoryRecord) BeforeCreate(tx *gorm.DB) error {
	return r.Validate()
}

// RecordFromEntry converts an entry for relational storage.
func RecordFromEntry(e HistoryEntry) (HistoryRecord, error) {
	data, err := json.Marshal(e.FullData)
	if err != nil {
		return HistoryRecord{}, fmt.Errorf("failed to encode verdict: %w", err)
	}

	return HistoryRecord{
		ID:          e.ID,
		CreatedAt:   time.Now(),
		Timestamp:   e.Timestamp,
		URL:         e.URL,
		ProductName: e.ProductName,
		Score:       e.Score,
		Verdict:     e.Verdict,
		FullData:    string(data),
	}, nil
}

// ToEntry converts a stored record back to its API form.
func (r HistoryRecord) ToEntry() HistoryEntry {
	entry := HistoryEntry{
		ID:          r.ID,
		Timestamp:   r.Timestamp,
		URL:         r.URL,
		ProductName: r.ProductName,
		Score:       r.Score,
		Verdict:     r.Verdict,
	}

	if r.FullData != "" {
		// A decode failure leaves FullData zeroed; the summary columns
		// still render.
		_ = json.Unmarshal([]byte(r.FullData), &entry.FullData)
	}

	return entry
}
