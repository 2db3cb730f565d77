package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fable/internal/models"
)

// Document is the persisted shape of the three collections: one structured
// JSON document holding the stories, users, and comments arrays. Enrichment
// fields (author names) are computed at response time and never stored.
type Document struct {
	Stories  []*models.Story   `json:"stories"`
	Users    []*models.User    `json:"users"`
	Comments []*models.Comment `json:"comments"`
}

// Persister mirrors the collections to durable storage. Load is called once
// at startup, Save after every successful mutation. There is no locking
// against concurrent writer processes; the last flush wins.
type Persister interface {
	Load() (*Document, error)
	Save(*Document) error
}

// FilePersister keeps the document in a single JSON file. Saves go through
// a temp file and rename so a crashed flush never leaves a truncated
// document behind.
type FilePersister struct {
	path string
}

// NewFilePersister returns a FilePersister writing to path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (p *FilePersister) Load() (*Document, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.path, err)
	}
	return &doc, nil
}

func (p *FilePersister) Save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p.path), filepath.Base(p.path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p.path)
}

// SeedDocument is the fixed dataset used when no persisted document can be
// read: one sample user, one sample story, zero comments.
func SeedDocument() *Document {
	ada := &models.User{
		ID:    "seed-user-ada",
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Bio:   "First of the storytellers.",
	}
	return &Document{
		Stories: []*models.Story{
			{
				ID:        "seed-story-welcome",
				Title:     "Welcome to Fable",
				Body:      "Every great library starts with a single story. This is ours.",
				AuthorID:  ada.ID,
				Genre:     "Meta",
				Likes:     0,
				CreatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		Users:    []*models.User{ada},
		Comments: []*models.Comment{},
	}
}
