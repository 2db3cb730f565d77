// Package seed creates demo data for development and testing. Everything
// goes through the entity store so seeded data obeys the same invariants as
// real traffic.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fable/internal/models"
	"fable/internal/service"
	"fable/internal/store"

	"github.com/brianvoe/gofakeit/v6"
)

var genres = []string{
	"Fantasy", "Horror", "Mystery", "Romance", "Sci-Fi",
	"Adventure", "Drama", "Comedy",
}

// Options controls how much demo data gets created.
type Options struct {
	NumUsers    int
	NumStories  int
	NumComments int
}

// Seeder populates a store with fake users, stories, and comments.
type Seeder struct {
	stories  *service.StoryService
	comments *service.CommentService
	users    *service.UserService
	rng      *rand.Rand
}

// NewSeeder creates a Seeder writing through st.
func NewSeeder(st *store.Store) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		stories:  service.NewStoryService(st, nil),
		comments: service.NewCommentService(st),
		users:    service.NewUserService(st),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run creates the requested amount of demo data.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.users.CreateUser(ctx, service.CreateUserInput{
			Name:      gofakeit.Name(),
			Email:     gofakeit.Email(),
			Bio:       gofakeit.Sentence(8),
			AvatarURL: fmt.Sprintf("https://picsum.photos/seed/%s/128/128", gofakeit.UUID()),
		})
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return fmt.Errorf("at least one user is required to seed stories")
	}

	stories := make([]string, 0, opts.NumStories)
	for i := 0; i < opts.NumStories; i++ {
		author := users[s.rng.Intn(len(users))]
		story, err := s.stories.CreateStory(ctx, service.CreateStoryInput{
			Title:    gofakeit.Sentence(4),
			Body:     gofakeit.Paragraph(2, 4, 8, "\n\n"),
			AuthorID: author.ID,
			Genre:    genres[s.rng.Intn(len(genres))],
		})
		if err != nil {
			return fmt.Errorf("seed story: %w", err)
		}
		stories = append(stories, story.ID)
	}

	for i := 0; i < opts.NumComments && len(stories) > 0; i++ {
		author := users[s.rng.Intn(len(users))]
		storyID := stories[s.rng.Intn(len(stories))]
		if _, err := s.comments.CreateComment(ctx, storyID, service.CreateCommentInput{
			AuthorID: author.ID,
			Text:     gofakeit.Sentence(10),
		}); err != nil {
			return fmt.Errorf("seed comment: %w", err)
		}
	}

	return nil
}
