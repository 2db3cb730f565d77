package store

import (
	"context"
	"testing"

	"fable/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStore(t *testing.T) *Store {
	t.Helper()
	return New(nil)
}

func createUser(t *testing.T, s *Store, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func createStory(t *testing.T, s *Store, authorID, title, genre string) *models.Story {
	t.Helper()
	st := &models.Story{Title: title, Body: "body of " + title, AuthorID: authorID, Genre: genre}
	require.NoError(t, s.CreateStory(context.Background(), st))
	return st
}

func TestCreateStoryAssignsFreshIdentity(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	u := createUser(t, s, "Ada")

	first := createStory(t, s, u.ID, "First", "Fantasy")
	second := createStory(t, s, u.ID, "Second", "Fantasy")

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Zero(t, second.Likes)
	assert.False(t, second.CreatedAt.IsZero())

	// newest first
	stories := s.ListStories(ctx, "")
	require.Len(t, stories, 2)
	assert.Equal(t, second.ID, stories[0].ID)
	assert.Equal(t, first.ID, stories[1].ID)
}

func TestListStoriesFilter(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	u := createUser(t, s, "Ada")
	createStory(t, s, u.ID, "The Dragon Keep", "Fantasy")
	createStory(t, s, u.ID, "Quiet Harbor", "Drama")

	tests := []struct {
		name   string
		filter string
		want   int
	}{
		{"no filter", "", 2},
		{"title match, case-insensitive", "dRaGoN", 1},
		{"body match", "body of quiet", 1},
		{"no match", "submarine", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, s.ListStories(ctx, tt.filter), tt.want)
		})
	}
}

func TestUpdateStoryPartialPatch(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	u := createUser(t, s, "Ada")
	st := createStory(t, s, u.ID, "Original", "Fantasy")

	title := "Renamed"
	likes := 7
	updated, err := s.UpdateStory(ctx, st.ID, models.StoryPatch{Title: &title, Likes: &likes})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 7, updated.Likes)
	// untouched fields keep their stored values
	assert.Equal(t, st.Body, updated.Body)
	assert.Equal(t, "Fantasy", updated.Genre)
	assert.Equal(t, st.CreatedAt, updated.CreatedAt)

	_, err = s.UpdateStory(ctx, "missing", models.StoryPatch{Title: &title})
	assert.True(t, models.IsNotFound(err))
}

func TestLikeStoryIncrementsByExactlyOne(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	u := createUser(t, s, "Ada")
	st := createStory(t, s, u.ID, "Likable", "Fantasy")

	for i := 1; i <= 5; i++ {
		got, err := s.LikeStory(ctx, st.ID)
		require.NoError(t, err)
		assert.Equal(t, i, got.Likes)
		// interleaved reads do not disturb the counter
		_, err = s.GetStory(ctx, st.ID)
		require.NoError(t, err)
	}

	_, err := s.LikeStory(ctx, "missing")
	assert.True(t, models.IsNotFound(err))
}

func TestDeleteStoryCascadesComments(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	u := createUser(t, s, "Ada")
	doomed := createStory(t, s, u.ID, "Doomed", "Fantasy")
	kept := createStory(t, s, u.ID, "Kept", "Fantasy")

	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateComment(ctx, &models.Comment{
			StoryID: doomed.ID, AuthorID: u.ID, Text: "on doomed",
		}))
	}
	require.NoError(t, s.CreateComment(ctx, &models.Comment{
		StoryID: kept.ID, AuthorID: u.ID, Text: "on kept",
	}))

	require.NoError(t, s.DeleteStory(ctx, doomed.ID))

	_, err := s.GetStory(ctx, doomed.ID)
	assert.True(t, models.IsNotFound(err))

	// listing comments for the deleted story fails: the story is gone
	_, err = s.CommentsForStory(ctx, doomed.ID)
	assert.True(t, models.IsNotFound(err))

	// the other story's comments survive, and no orphan remains in the document
	comments, err := s.CommentsForStory(ctx, kept.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
	assert.Len(t, s.Document(ctx).Comments, 1)
}

func TestCreateCommentRequiresStory(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	u := createUser(t, s, "Ada")

	err := s.CreateComment(ctx, &models.Comment{StoryID: "missing", AuthorID: u.ID, Text: "hi"})
	assert.True(t, models.IsNotFound(err))
}

func TestCommentsKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	u := createUser(t, s, "Ada")
	st := createStory(t, s, u.ID, "Ordered", "Fantasy")

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, s.CreateComment(ctx, &models.Comment{
			StoryID: st.ID, AuthorID: u.ID, Text: text,
		}))
	}

	comments, err := s.CommentsForStory(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
	assert.Equal(t, "third", comments[2].Text)
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	u := createUser(t, s, "Ada")
	st := createStory(t, s, u.ID, "Commented", "Fantasy")

	c := &models.Comment{StoryID: st.ID, AuthorID: u.ID, Text: "bye"}
	require.NoError(t, s.CreateComment(ctx, c))
	require.NoError(t, s.DeleteComment(ctx, c.ID))

	comments, err := s.CommentsForStory(ctx, st.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	assert.True(t, models.IsNotFound(s.DeleteComment(ctx, c.ID)))
}

func TestAuthorNameResolution(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	u := createUser(t, s, "Ada")

	assert.Equal(t, "Ada", s.AuthorName(ctx, u.ID))
	assert.Equal(t, models.UnknownAuthor, s.AuthorName(ctx, "nobody"))
}

func TestStoriesByGenre(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	u := createUser(t, s, "Ada")
	viewed := createStory(t, s, u.ID, "Viewed", "Fantasy")
	f1 := createStory(t, s, u.ID, "Fantasy One", "Fantasy")
	f2 := createStory(t, s, u.ID, "Fantasy Two", "Fantasy")
	createStory(t, s, u.ID, "Spooky", "Horror")

	got := s.StoriesByGenre(ctx, "Fantasy", viewed.ID, 3)
	require.Len(t, got, 2)
	// collection order: newest first
	assert.Equal(t, f2.ID, got[0].ID)
	assert.Equal(t, f1.ID, got[1].ID)

	assert.Empty(t, s.StoriesByGenre(ctx, "Western", "", 3))

	// limit applies
	createStory(t, s, u.ID, "Fantasy Three", "Fantasy")
	createStory(t, s, u.ID, "Fantasy Four", "Fantasy")
	assert.Len(t, s.StoriesByGenre(ctx, "Fantasy", viewed.ID, 3), 3)
}
