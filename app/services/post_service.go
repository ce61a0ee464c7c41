package services

import (
	"fmt"
	"time"

	"soapbox/app/models"
	"soapbox/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost creates a new blog post with validation
func (s *PostService) CreatePost(post *models.Post) error {
	if err := validatePost(post); err != nil {
		return fmt.Errorf("invalid post: %v", err)
	}

	post.PublishedDate = time.Now()

	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %v", err)
	}

	return s.postRepo.Create(post)
}

// GetPost retrieves a post by ID with its comments in creation order
func (s *PostService) GetPost(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %v", err)
	}
	post.Comments = comments

	return post, nil
}

// ListPosts retrieves all posts, newest first
func (s *PostService) ListPosts() ([]*models.Post, error) {
	return s.postRepo.List()
}

// validatePost validates a post's fields
func validatePost(post *models.Post) error {
	if post.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(post.Title) > 200 {
		return fmt.Errorf("title is too long (maximum 200 characters)")
	}
	if post.Content == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}
