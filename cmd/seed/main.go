// Command main populates a data file with demo content for Fable.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"fable/internal/config"
	"fable/internal/seed"
	"fable/internal/store"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numStories := flag.Int("stories", 40, "Number of stories to create")
	numComments := flag.Int("comments", 80, "Number of comments to create")
	clean := flag.Bool("clean", true, "Start from an empty data file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.StoreBackend != config.BackendFile {
		log.Fatal("Seeding requires STORE_BACKEND=file")
	}

	if *clean {
		if err := os.Remove(cfg.DataFile); err != nil && !os.IsNotExist(err) {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	st := store.New(store.NewFilePersister(cfg.DataFile))
	s := seed.NewSeeder(st)

	log.Printf("Seeding %d users, %d stories, %d comments into %s",
		*numUsers, *numStories, *numComments, cfg.DataFile)
	if err := s.Run(context.Background(), seed.Options{
		NumUsers:    *numUsers,
		NumStories:  *numStories,
		NumComments: *numComments,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Done")
}
