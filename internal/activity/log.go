// Package activity persists story-view events as an append-only log of
// newline-delimited JSON records.
package activity

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fable/internal/models"
	"fable/internal/observability"
)

// Log appends view records to a single file, one JSON object per line.
// Records are never mutated or deleted; re-reading the file reconstructs
// them in write order.
type Log struct {
	mu   sync.Mutex
	path string
}

// NewLog returns a Log writing to path. The file is created on first append.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append writes one record with the current timestamp.
func (l *Log) Append(_ context.Context, userID, viewedStoryID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := models.ActivityRecord{
		UserID:        userID,
		ViewedStoryID: viewedStoryID,
		Timestamp:     time.Now().UTC(),
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create activity log directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append activity record: %w", err)
	}
	observability.ActivityAppends.Inc()
	return nil
}

// UserHistory reads the entire log and returns the records for userID in
// file order, oldest first. A missing log file yields an empty history.
func (l *Log) UserHistory(_ context.Context, userID string) ([]models.ActivityRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.ActivityRecord{}, nil
		}
		return nil, fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()

	history := []models.ActivityRecord{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec models.ActivityRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parse activity record: %w", err)
		}
		if rec.UserID == userID {
			history = append(history, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read activity log: %w", err)
	}
	return history, nil
}
