// Package models contains data structures for the application's domain models.
package models

import "time"

// Story represents a short story posted by a user.
type Story struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	AuthorID  string    `json:"authorId"`
	Genre     string    `json:"genre"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// StoryView is a Story enriched with the resolved author display name.
// AuthorName is computed at response time and never persisted.
type StoryView struct {
	Story
	AuthorName string `json:"authorName"`
}

// StoryDetail is a StoryView together with the story's comments.
type StoryDetail struct {
	StoryView
	Comments []CommentView `json:"comments"`
}

// StoryPatch carries the mutable Story fields of a partial update.
// Nil pointers leave the stored value unchanged.
type StoryPatch struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
	Genre *string `json:"genre"`
	Likes *int    `json:"likes"`
}
