// Package store owns the in-memory story, user, and comment collections and
// keeps them consistent: unique ids, cascade deletes, and a full-document
// flush to the configured Persister after every mutation.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fable/internal/models"
	"fable/internal/observability"

	"github.com/google/uuid"
)

// Store is the authoritative owner of the three collections for the process
// lifetime. All access runs under a single mutex so concurrent requests keep
// the one-logical-writer semantics, with last-write-wins at flush granularity.
type Store struct {
	mu       sync.Mutex
	stories  []*models.Story // newest first
	users    []*models.User
	comments []*models.Comment // insertion order
	persist  Persister
}

// New builds a Store backed by p. A nil Persister keeps the collections
// purely in memory, starting empty. When p is set, the persisted document is
// loaded once; absence or a parse failure falls back to the seed dataset
// with a warning (the previous file contents, if any, are overwritten on the
// next flush).
func New(p Persister) *Store {
	s := &Store{persist: p}
	doc := &Document{}
	if p != nil {
		loaded, err := p.Load()
		if err != nil {
			slog.Warn("store: could not load persisted document, starting from seed data", "error", err)
			doc = SeedDocument()
		} else {
			doc = loaded
		}
	}
	s.stories = doc.Stories
	s.users = doc.Users
	s.comments = doc.Comments
	return s
}

// flush overwrites the persisted document with the current collections.
// Callers must hold s.mu.
func (s *Store) flush() error {
	if s.persist == nil {
		return nil
	}
	start := time.Now()
	defer func() {
		observability.FlushLatency.Observe(time.Since(start).Seconds())
	}()
	if err := s.persist.Save(s.documentLocked()); err != nil {
		return fmt.Errorf("flush store document: %w", err)
	}
	return nil
}

// ListStories returns all stories newest first, optionally restricted to
// those whose title or body contains filter (case-insensitive).
func (s *Store) ListStories(_ context.Context, filter string) []models.Story {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(filter)
	out := make([]models.Story, 0, len(s.stories))
	for _, st := range s.stories {
		if needle != "" &&
			!strings.Contains(strings.ToLower(st.Title), needle) &&
			!strings.Contains(strings.ToLower(st.Body), needle) {
			continue
		}
		out = append(out, *st)
	}
	return out
}

// GetStory returns the story with the given id.
func (s *Store) GetStory(_ context.Context, id string) (models.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.findStoryLocked(id)
	if st == nil {
		return models.Story{}, models.NewNotFoundError("Story", id)
	}
	return *st, nil
}

// CreateStory assigns a fresh id and creation timestamp, inserts the story
// at the head of the collection, and flushes.
func (s *Store) CreateStory(_ context.Context, story *models.Story) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	story.ID = uuid.NewString()
	story.Likes = 0
	story.CreatedAt = time.Now().UTC()
	s.stories = append([]*models.Story{story}, s.stories...)
	return s.flush()
}

// UpdateStory applies the non-nil fields of patch and flushes.
func (s *Store) UpdateStory(_ context.Context, id string, patch models.StoryPatch) (models.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.findStoryLocked(id)
	if st == nil {
		return models.Story{}, models.NewNotFoundError("Story", id)
	}
	if patch.Title != nil {
		st.Title = *patch.Title
	}
	if patch.Body != nil {
		st.Body = *patch.Body
	}
	if patch.Genre != nil {
		st.Genre = *patch.Genre
	}
	if patch.Likes != nil {
		st.Likes = *patch.Likes
	}
	if err := s.flush(); err != nil {
		return models.Story{}, err
	}
	return *st, nil
}

// DeleteStory removes the story and every comment referencing it, then
// flushes.
func (s *Store) DeleteStory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, st := range s.stories {
		if st.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.NewNotFoundError("Story", id)
	}
	s.stories = append(s.stories[:idx], s.stories[idx+1:]...)

	kept := s.comments[:0]
	for _, c := range s.comments {
		if c.StoryID != id {
			kept = append(kept, c)
		}
	}
	s.comments = kept
	return s.flush()
}

// LikeStory increments the story's like counter by exactly one and flushes.
func (s *Store) LikeStory(_ context.Context, id string) (models.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.findStoryLocked(id)
	if st == nil {
		return models.Story{}, models.NewNotFoundError("Story", id)
	}
	st.Likes++
	if err := s.flush(); err != nil {
		return models.Story{}, err
	}
	return *st, nil
}

// StoriesByGenre returns up to limit stories sharing genre, excluding
// excludeID, in collection order (newest first).
func (s *Store) StoriesByGenre(_ context.Context, genre, excludeID string, limit int) []models.Story {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Story
	for _, st := range s.stories {
		if st.ID == excludeID || st.Genre != genre {
			continue
		}
		out = append(out, *st)
		if len(out) == limit {
			break
		}
	}
	return out
}

// CommentsForStory returns the story's comments in insertion order. The
// parent story must exist.
func (s *Store) CommentsForStory(_ context.Context, storyID string) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findStoryLocked(storyID) == nil {
		return nil, models.NewNotFoundError("Story", storyID)
	}
	out := []models.Comment{}
	for _, c := range s.comments {
		if c.StoryID == storyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

// CreateComment assigns a fresh id and timestamp, appends the comment, and
// flushes. The parent story must exist at creation time.
func (s *Store) CreateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findStoryLocked(comment.StoryID) == nil {
		return models.NewNotFoundError("Story", comment.StoryID)
	}
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()
	s.comments = append(s.comments, comment)
	return s.flush()
}

// DeleteComment removes a single comment and flushes.
func (s *Store) DeleteComment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.comments {
		if c.ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			return s.flush()
		}
	}
	return models.NewNotFoundError("Comment", id)
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return *u, nil
		}
	}
	return models.User{}, models.NewNotFoundError("User", id)
}

// CreateUser assigns a fresh id, appends the user, and flushes.
func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = uuid.NewString()
	s.users = append(s.users, user)
	return s.flush()
}

// UserExists reports whether a user with the given id is registered.
func (s *Store) UserExists(_ context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

// AuthorName resolves a user id to its display name. Dangling references
// resolve to models.UnknownAuthor rather than an error.
func (s *Store) AuthorName(_ context.Context, id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u.Name
		}
	}
	return models.UnknownAuthor
}

// Document returns a deep copy of the current collections in persisted form.
func (s *Store) Document(_ context.Context) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documentLocked()
}

func (s *Store) documentLocked() *Document {
	doc := &Document{
		Stories:  make([]*models.Story, len(s.stories)),
		Users:    make([]*models.User, len(s.users)),
		Comments: make([]*models.Comment, len(s.comments)),
	}
	for i, st := range s.stories {
		cp := *st
		doc.Stories[i] = &cp
	}
	for i, u := range s.users {
		cp := *u
		doc.Users[i] = &cp
	}
	for i, c := range s.comments {
		cp := *c
		doc.Comments[i] = &cp
	}
	return doc
}

func (s *Store) findStoryLocked(id string) *models.Story {
	for _, st := range s.stories {
		if st.ID == id {
			return st
		}
	}
	return nil
}
