// Package service implements the application's use cases on top of the
// entity store: input validation, author-name enrichment, and the
// fire-and-forget notification on story creation.
package service

import (
	"context"

	"fable/internal/models"
	"fable/internal/store"
)

// Notifier is notified after a story is successfully created. Delivery is
// best-effort and must never fail the creating request.
type Notifier interface {
	StoryCreated(story models.Story)
}

type StoryService struct {
	store    *store.Store
	notifier Notifier
}

type CreateStoryInput struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	AuthorID string `json:"authorId"`
	Genre    string `json:"genre"`
}

// NewStoryService creates a StoryService. notifier may be nil.
func NewStoryService(st *store.Store, notifier Notifier) *StoryService {
	return &StoryService{store: st, notifier: notifier}
}

// ListStories returns all stories newest first, optionally filtered by a
// case-insensitive substring of title or body, each enriched with the
// resolved author name.
func (s *StoryService) ListStories(ctx context.Context, filter string) []models.StoryView {
	return s.enrichStories(ctx, s.store.ListStories(ctx, filter))
}

// GetStory returns the story with its comments, both enriched.
func (s *StoryService) GetStory(ctx context.Context, id string) (*models.StoryDetail, error) {
	story, err := s.store.GetStory(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.CommentsForStory(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &models.StoryDetail{
		StoryView: s.enrich(ctx, story),
		Comments:  make([]models.CommentView, 0, len(comments)),
	}
	for _, c := range comments {
		detail.Comments = append(detail.Comments, models.CommentView{
			Comment:    c,
			AuthorName: s.store.AuthorName(ctx, c.AuthorID),
		})
	}
	return detail, nil
}

// CreateStory validates the input, inserts the story, and notifies
// subscribers. The author must be a registered user at creation time.
func (s *StoryService) CreateStory(ctx context.Context, in CreateStoryInput) (*models.StoryView, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}
	if in.AuthorID == "" {
		return nil, models.NewValidationError("Author ID is required")
	}
	if !s.store.UserExists(ctx, in.AuthorID) {
		return nil, models.NewValidationError("Author does not exist")
	}

	story := &models.Story{
		Title:    in.Title,
		Body:     in.Body,
		AuthorID: in.AuthorID,
		Genre:    in.Genre,
	}
	if err := s.store.CreateStory(ctx, story); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.StoryCreated(*story)
	}

	view := s.enrich(ctx, *story)
	return &view, nil
}

// UpdateStory applies a partial patch. Fields absent from the patch leave
// the stored value unchanged.
func (s *StoryService) UpdateStory(ctx context.Context, id string, patch models.StoryPatch) (*models.StoryView, error) {
	if patch.Likes != nil && *patch.Likes < 0 {
		return nil, models.NewValidationError("Likes cannot be negative")
	}
	story, err := s.store.UpdateStory(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	view := s.enrich(ctx, story)
	return &view, nil
}

// DeleteStory removes the story and all its comments.
func (s *StoryService) DeleteStory(ctx context.Context, id string) error {
	return s.store.DeleteStory(ctx, id)
}

// LikeStory increments the story's like counter by one.
func (s *StoryService) LikeStory(ctx context.Context, id string) (*models.StoryView, error) {
	story, err := s.store.LikeStory(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.enrich(ctx, story)
	return &view, nil
}

func (s *StoryService) enrich(ctx context.Context, story models.Story) models.StoryView {
	return models.StoryView{
		Story:      story,
		AuthorName: s.store.AuthorName(ctx, story.AuthorID),
	}
}

func (s *StoryService) enrichStories(ctx context.Context, stories []models.Story) []models.StoryView {
	views := make([]models.StoryView, 0, len(stories))
	for _, st := range stories {
		views = append(views, s.enrich(ctx, st))
	}
	return views
}
