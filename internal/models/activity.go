package models

import "time"

// ActivityRecord is one story-view event. Records are append-only: they are
// never mutated or deleted, and the newline-delimited log file is their sole
// persisted representation.
type ActivityRecord struct {
	UserID        string    `json:"userId"`
	ViewedStoryID string    `json:"viewedStoryId"`
	Timestamp     time.Time `json:"timestamp"`
}
