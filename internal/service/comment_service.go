package service

import (
	"context"

	"fable/internal/models"
	"fable/internal/store"
)

type CommentService struct {
	store *store.Store
}

type CreateCommentInput struct {
	AuthorID string `json:"authorId"`
	Text     string `json:"text"`
}

func NewCommentService(st *store.Store) *CommentService {
	return &CommentService{store: st}
}

// ListComments returns the story's comments in insertion order, enriched
// with author names. Fails with NotFound if the story does not exist.
func (s *CommentService) ListComments(ctx context.Context, storyID string) ([]models.CommentView, error) {
	comments, err := s.store.CommentsForStory(ctx, storyID)
	if err != nil {
		return nil, err
	}
	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, models.CommentView{
			Comment:    c,
			AuthorName: s.store.AuthorName(ctx, c.AuthorID),
		})
	}
	return views, nil
}

// CreateComment validates the input and appends the comment to the story.
func (s *CommentService) CreateComment(ctx context.Context, storyID string, in CreateCommentInput) (*models.CommentView, error) {
	if in.AuthorID == "" {
		return nil, models.NewValidationError("Author ID is required")
	}
	if in.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}

	comment := &models.Comment{
		StoryID:  storyID,
		AuthorID: in.AuthorID,
		Text:     in.Text,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return &models.CommentView{
		Comment:    *comment,
		AuthorName: s.store.AuthorName(ctx, comment.AuthorID),
	}, nil
}

// DeleteComment removes a single comment by id.
func (s *CommentService) DeleteComment(ctx context.Context, id string) error {
	return s.store.DeleteComment(ctx, id)
}
