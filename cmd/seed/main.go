// Command main runs the database seeder for Zogakzip.
package main

import (
	"flag"
	"log"

	"zogakzip/internal/config"
	"zogakzip/internal/database"
	"zogakzip/internal/seed"
)

func main() {
	// Parse command line flags
	numGroups := flag.Int("groups", 10, "Number of groups to create")
	postsPerGroup := flag.Int("posts", 8, "Number of posts per group")
	commentsPerPost := flag.Int("comments", 3, "Number of comments per post")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d groups, %d posts each, %d comments per post, clean=%v\n",
		*numGroups, *postsPerGroup, *commentsPerPost, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	_, err = database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run seeder
	s := seed.NewSeeder(database.DB)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Seed(seed.Options{
		NumGroups:       *numGroups,
		PostsPerGroup:   *postsPerGroup,
		CommentsPerPost: *commentsPerPost,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. All seeded entities use the password %q.", seed.DefaultPassword)
}
