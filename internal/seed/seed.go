// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"zogakzip/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumGroups       int
	PostsPerGroup   int
	CommentsPerPost int
	ShouldClean     bool
}

// DefaultPassword is the plaintext password every seeded entity gets so
// developers can exercise gated mutations against seed data.
const DefaultPassword = "password"

var badgePool = []string{
	"7days-streak", "memory-100", "group-likes-10k", "post-likes-10k", "anniversary",
}

// Seeder creates demo data for the application database.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data, children first.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, table := range []string{"comments", "posts", "groups"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Seed populates the database with groups, posts and comments.
func (s *Seeder) Seed(opts Options) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	for g := 0; g < opts.NumGroups; g++ {
		group := s.buildGroup(string(hashed))
		if err := s.db.Create(group).Error; err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}

		for p := 0; p < opts.PostsPerGroup; p++ {
			post := s.buildPost(group.ID, string(hashed))
			if err := s.db.Create(post).Error; err != nil {
				return fmt.Errorf("failed to create post: %w", err)
			}

			for c := 0; c < opts.CommentsPerPost; c++ {
				comment := s.buildComment(post.ID, string(hashed))
				if err := s.db.Create(comment).Error; err != nil {
					return fmt.Errorf("failed to create comment: %w", err)
				}
			}

			post.CommentCount = opts.CommentsPerPost
			if err := s.db.Model(post).UpdateColumn("comment_count", post.CommentCount).Error; err != nil {
				return fmt.Errorf("failed to set comment count: %w", err)
			}
		}

		if err := s.db.Model(group).UpdateColumn("post_count", opts.PostsPerGroup).Error; err != nil {
			return fmt.Errorf("failed to set post count: %w", err)
		}
	}

	log.Printf("Seeded %d groups with %d posts each (%d comments per post)",
		opts.NumGroups, opts.PostsPerGroup, opts.CommentsPerPost)
	return nil
}

func (s *Seeder) buildGroup(hashedPassword string) *models.Group {
	badges := models.StringList{}
	for _, b := range badgePool {
		if s.rand.Intn(3) == 0 {
			badges = append(badges, b)
		}
	}

	return &models.Group{
		Name:         gofakeit.NounCollectiveThing() + " of " + gofakeit.FirstName(),
		Password:     hashedPassword,
		ImageURL:     fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		IsPublic:     s.rand.Intn(4) != 0,
		Introduction: gofakeit.Paragraph(1, 2, 8, " "),
		LikeCount:    s.rand.Intn(500),
		Badges:       badges,
		CreatedAt:    s.pastTime(365),
	}
}

func (s *Seeder) buildPost(groupID uint, hashedPassword string) *models.Post {
	moment := s.pastTime(120)
	return &models.Post{
		GroupID:      groupID,
		Nickname:     gofakeit.Username(),
		Title:        gofakeit.Sentence(5),
		Content:      gofakeit.Paragraph(2, 4, 10, "\n"),
		PostPassword: hashedPassword,
		ImageURL:     fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		Tags:         models.StringList{gofakeit.Word(), gofakeit.Word()},
		Location:     gofakeit.City(),
		Moment:       &moment,
		IsPublic:     s.rand.Intn(4) != 0,
		LikeCount:    s.rand.Intn(200),
		CreatedAt:    s.pastTime(90),
	}
}

func (s *Seeder) buildComment(postID uint, hashedPassword string) *models.Comment {
	return &models.Comment{
		PostID:    postID,
		Nickname:  gofakeit.Username(),
		Content:   gofakeit.Sentence(10),
		Password:  hashedPassword,
		CreatedAt: s.pastTime(30),
	}
}

// pastTime returns a random timestamp up to maxDays in the past.
func (s *Seeder) pastTime(maxDays int) time.Time {
	daysBack := s.rand.Intn(maxDays)
	hoursBack := s.rand.Intn(24)
	minsBack := s.rand.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
