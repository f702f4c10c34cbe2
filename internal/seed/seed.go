// Package seed provides database seeding utilities for development.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	NumComments int
}

// Seeder populates the database with fake data.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder over the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes all seeded rows. Development use only.
func (s *Seeder) ClearAll() error {
	return s.db.Exec("TRUNCATE TABLE post_tags, comments, posts, tags, users CASCADE").Error
}

var tagNames = []string{
	"go", "databases", "testing", "web", "security",
	"performance", "tooling", "opinion", "tutorial", "release",
}

// Run seeds users, tags, posts and comments.
func (s *Seeder) Run(opts Options) error {
	hashed, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:    "admin",
		Email:       "admin@inkwell.dev",
		Password:    hashed,
		IsSuperuser: true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		u := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: hashed,
		}
		if err := s.db.Create(u).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, u)
	}
	log.Printf("Seeded %d users", len(users)+1)

	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		t := models.Tag{Name: name}
		if err := s.db.Create(&t).Error; err != nil {
			return fmt.Errorf("seed tag: %w", err)
		}
		tags = append(tags, t)
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		owner := users[rand.Intn(len(users))]
		post := &models.Post{
			Title:   gofakeit.Sentence(6),
			Content: gofakeit.Paragraph(2, 4, 12, "\n"),
			UserID:  owner.ID,
			Tags:    []models.Tag{tags[rand.Intn(len(tags))]},
		}
		if err := s.db.Create(post).Error; err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("Seeded %d posts", len(posts))

	for i := 0; i < opts.NumComments; i++ {
		comment := &models.Comment{
			Content: gofakeit.Sentence(12),
			UserID:  users[rand.Intn(len(users))].ID,
			PostID:  posts[rand.Intn(len(posts))].ID,
		}
		if err := s.db.Create(comment).Error; err != nil {
			return fmt.Errorf("seed comment: %w", err)
		}
	}
	log.Printf("Seeded %d comments", opts.NumComments)

	return nil
}
