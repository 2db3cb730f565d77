package models

import "time"

// Comment represents a comment on a story. Comments are cascade-deleted
// when their parent story is deleted.
type Comment struct {
	ID        string    `json:"id"`
	StoryID   string    `json:"storyId"`
	AuthorID  string    `json:"authorId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentView is a Comment enriched with the resolved author display name.
type CommentView struct {
	Comment
	AuthorName string `json:"authorName"`
}
