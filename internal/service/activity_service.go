package service

import (
	"context"

	"fable/internal/activity"
	"fable/internal/models"
	"fable/internal/store"
)

// maxRecommendations caps the genre-based recommendation list.
const maxRecommendations = 3

type ActivityService struct {
	log   *activity.Log
	store *store.Store
}

type RecordActivityInput struct {
	UserID        string `json:"userId"`
	ViewedStoryID string `json:"viewedStoryId"`
}

func NewActivityService(log *activity.Log, st *store.Store) *ActivityService {
	return &ActivityService{log: log, store: st}
}

// Record validates the input and appends one view record to the log.
// Views are not deduplicated and the log is never pruned.
func (s *ActivityService) Record(ctx context.Context, in RecordActivityInput) error {
	if in.UserID == "" {
		return models.NewValidationError("User ID is required")
	}
	if in.ViewedStoryID == "" {
		return models.NewValidationError("Viewed story ID is required")
	}
	return s.log.Append(ctx, in.UserID, in.ViewedStoryID)
}

// History returns the user's view records in write order, oldest first.
func (s *ActivityService) History(ctx context.Context, userID string) ([]models.ActivityRecord, error) {
	return s.log.UserHistory(ctx, userID)
}

// Recommend derives up to maxRecommendations stories from the user's most
// recent view: stories sharing that story's genre, in collection order,
// excluding the viewed story itself. A user with no history, or whose last
// viewed story no longer exists, gets an empty list.
func (s *ActivityService) Recommend(ctx context.Context, userID string) ([]models.StoryView, error) {
	history, err := s.log.UserHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return []models.StoryView{}, nil
	}

	last := history[len(history)-1]
	viewed, err := s.store.GetStory(ctx, last.ViewedStoryID)
	if err != nil {
		if models.IsNotFound(err) {
			return []models.StoryView{}, nil
		}
		return nil, err
	}

	matches := s.store.StoriesByGenre(ctx, viewed.Genre, viewed.ID, maxRecommendations)
	views := make([]models.StoryView, 0, len(matches))
	for _, st := range matches {
		views = append(views, models.StoryView{
			Story:      st,
			AuthorName: s.store.AuthorName(ctx, st.AuthorID),
		})
	}
	return views, nil
}
