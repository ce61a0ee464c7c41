// Package gormstore provides PostgreSQL-backed implementations of the
// repository interfaces, selected with STORAGE_DRIVER=postgres.
package gormstore

import (
	"errors"
	"fmt"

	"soapbox/app/models"
	"soapbox/app/repositories"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to PostgreSQL and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Post{}, &models.Comment{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// PostStore implements repositories.PostRepository on gorm.
type PostStore struct {
	db *gorm.DB
}

// NewPostStore creates a new PostStore
func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) Create(post *models.Post) error {
	post.BeforeCreate()
	return s.db.Create(post).Error
}

func (s *PostStore) GetByID(id int) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostStore) List() ([]*models.Post, error) {
	var posts []*models.Post
	err := s.db.Order("published_date DESC").Find(&posts).Error
	return posts, err
}

// CommentStore implements repositories.CommentRepository on gorm.
type CommentStore struct {
	db *gorm.DB
}

// NewCommentStore creates a new CommentStore
func NewCommentStore(db *gorm.DB) *CommentStore {
	return &CommentStore{db: db}
}

func (s *CommentStore) Create(comment *models.Comment) error {
	comment.BeforeCreate()
	return s.db.Create(comment).Error
}

func (s *CommentStore) ListByPost(postID int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := s.db.Where("post_id = ?", postID).Order("created_date ASC").Find(&comments).Error
	return comments, err
}

func (s *CommentStore) ListFlagged() ([]*models.Comment, error) {
	var comments []*models.Comment
	err := s.db.Where("flagged = ?", true).Find(&comments).Error
	return comments, err
}
