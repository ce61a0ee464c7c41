package repositories

import "soapbox/app/models"

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	// List returns all posts sorted by published date, newest first.
	List() ([]*models.Post, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	// ListByPost returns a post's comments sorted by created date, oldest first.
	ListByPost(postID int) ([]*models.Comment, error)
	// ListFlagged returns every comment marked for moderation review.
	ListFlagged() ([]*models.Comment, error)
}
