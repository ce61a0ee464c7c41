package services

import (
	"context"
	"fmt"
	"time"

	"soapbox/app/models"
	"soapbox/app/moderation"
	"soapbox/app/repositories"
)

// CommentService handles business logic for comments, including the
// moderation step that decides the flagged value before a comment is stored.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	classifier  moderation.Classifier
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, classifier moderation.Classifier) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		classifier:  classifier,
	}
}

// CreateComment validates the comment, verifies the parent post exists,
// obtains a moderation verdict and persists the comment with it. The
// classifier is always consulted before the write; if the write then fails
// the verdict is discarded with it.
func (s *CommentService) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := validateComment(comment); err != nil {
		return fmt.Errorf("invalid comment: %v", err)
	}

	if _, err := s.postRepo.GetByID(comment.PostID); err != nil {
		return fmt.Errorf("post not found: %w", err)
	}

	verdict := s.classifier.Classify(ctx, comment.Text)
	comment.Flagged = verdict.Flagged()
	comment.CreatedDate = time.Now()

	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %v", err)
	}

	return s.commentRepo.Create(comment)
}

// ListPostComments retrieves all comments for a post in creation order
func (s *CommentService) ListPostComments(postID int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, fmt.Errorf("post not found: %w", err)
	}

	return s.commentRepo.ListByPost(postID)
}

// ListFlagged retrieves every comment marked for moderation review
func (s *CommentService) ListFlagged() ([]*models.Comment, error) {
	return s.commentRepo.ListFlagged()
}

// validateComment validates a comment's fields
func validateComment(comment *models.Comment) error {
	if comment.PostID <= 0 {
		return fmt.Errorf("invalid post ID")
	}
	if comment.AuthorName == "" {
		return fmt.Errorf("author name is required")
	}
	if len(comment.AuthorName) > 100 {
		return fmt.Errorf("author name is too long (maximum 100 characters)")
	}
	if comment.Text == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}
