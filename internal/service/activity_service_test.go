package service

import (
	"context"
	"path/filepath"
	"testing"

	"fable/internal/activity"
	"fable/internal/models"
	"fable/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActivityService(t *testing.T, st *store.Store) *ActivityService {
	t.Helper()
	log := activity.NewLog(filepath.Join(t.TempDir(), "activity.log"))
	return NewActivityService(log, st)
}

func TestRecordValidation(t *testing.T) {
	ctx := context.Background()
	svc := newActivityService(t, store.New(nil))

	tests := []struct {
		name string
		in   RecordActivityInput
	}{
		{"missing user", RecordActivityInput{ViewedStoryID: "s1"}},
		{"missing story", RecordActivityInput{UserID: "u1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Record(ctx, tt.in)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestRecommendEmptyWithoutHistory(t *testing.T) {
	ctx := context.Background()
	svc := newActivityService(t, store.New(nil))

	got, err := svc.Recommend(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestRecommendByLastViewedGenre(t *testing.T) {
	ctx := context.Background()
	st := store.New(nil)
	ada := newAuthor(t, st, "Ada")
	svc := newActivityService(t, st)

	viewed := &models.Story{Title: "Viewed", Body: "b", AuthorID: ada.ID, Genre: "Fantasy"}
	require.NoError(t, st.CreateStory(ctx, viewed))
	f1 := &models.Story{Title: "Fantasy One", Body: "b", AuthorID: ada.ID, Genre: "Fantasy"}
	require.NoError(t, st.CreateStory(ctx, f1))
	f2 := &models.Story{Title: "Fantasy Two", Body: "b", AuthorID: ada.ID, Genre: "Fantasy"}
	require.NoError(t, st.CreateStory(ctx, f2))
	horror := &models.Story{Title: "Spooky", Body: "b", AuthorID: ada.ID, Genre: "Horror"}
	require.NoError(t, st.CreateStory(ctx, horror))

	require.NoError(t, svc.Record(ctx, RecordActivityInput{UserID: "u1", ViewedStoryID: viewed.ID}))

	got, err := svc.Recommend(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	ids := []string{got[0].ID, got[1].ID}
	assert.Contains(t, ids, f1.ID)
	assert.Contains(t, ids, f2.ID)
	assert.NotContains(t, ids, viewed.ID)
	assert.NotContains(t, ids, horror.ID)
	assert.Equal(t, "Ada", got[0].AuthorName)
}

func TestRecommendUsesMostRecentView(t *testing.T) {
	ctx := context.Background()
	st := store.New(nil)
	ada := newAuthor(t, st, "Ada")
	svc := newActivityService(t, st)

	fantasy := &models.Story{Title: "Fantasy", Body: "b", AuthorID: ada.ID, Genre: "Fantasy"}
	require.NoError(t, st.CreateStory(ctx, fantasy))
	horror := &models.Story{Title: "Horror", Body: "b", AuthorID: ada.ID, Genre: "Horror"}
	require.NoError(t, st.CreateStory(ctx, horror))
	horror2 := &models.Story{Title: "Horror Two", Body: "b", AuthorID: ada.ID, Genre: "Horror"}
	require.NoError(t, st.CreateStory(ctx, horror2))

	require.NoError(t, svc.Record(ctx, RecordActivityInput{UserID: "u1", ViewedStoryID: fantasy.ID}))
	require.NoError(t, svc.Record(ctx, RecordActivityInput{UserID: "u1", ViewedStoryID: horror.ID}))

	got, err := svc.Recommend(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, horror2.ID, got[0].ID)
}

func TestRecommendEmptyWhenViewedStoryGone(t *testing.T) {
	ctx := context.Background()
	st := store.New(nil)
	ada := newAuthor(t, st, "Ada")
	svc := newActivityService(t, st)

	story := &models.Story{Title: "Ephemeral", Body: "b", AuthorID: ada.ID, Genre: "Fantasy"}
	require.NoError(t, st.CreateStory(ctx, story))
	require.NoError(t, svc.Record(ctx, RecordActivityInput{UserID: "u1", ViewedStoryID: story.ID}))
	require.NoError(t, st.DeleteStory(ctx, story.ID))

	got, err := svc.Recommend(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecommendCapsAtThree(t *testing.T) {
	ctx := context.Background()
	st := store.New(nil)
	ada := newAuthor(t, st, "Ada")
	svc := newActivityService(t, st)

	viewed := &models.Story{Title: "Viewed", Body: "b", AuthorID: ada.ID, Genre: "Fantasy"}
	require.NoError(t, st.CreateStory(ctx, viewed))
	for i := 0; i < 5; i++ {
		require.NoError(t, st.CreateStory(ctx, &models.Story{
			Title: "More Fantasy", Body: "b", AuthorID: ada.ID, Genre: "Fantasy",
		}))
	}
	require.NoError(t, svc.Record(ctx, RecordActivityInput{UserID: "u1", ViewedStoryID: viewed.ID}))

	got, err := svc.Recommend(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
