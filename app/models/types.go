package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Post represents a blog post with comments.
type Post struct {
	ID            int        `json:"id" gorm:"primaryKey" validate:"gte=0"`
	Title         string     `json:"title" gorm:"size:200;not null" validate:"required,max=200"`
	Content       string     `json:"content" gorm:"type:text;not null" validate:"required"`
	PublishedDate time.Time  `json:"published_date" gorm:"not null" validate:"required"`
	Comments      []*Comment `json:"comments" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" validate:"-"`
}

// Comment represents a reader comment on a blog post. Flagged marks the
// comment for moderation review; it is set once at creation and never
// recomputed.
type Comment struct {
	ID          int       `json:"id" gorm:"primaryKey" validate:"gte=0"`
	PostID      int       `json:"post_id" gorm:"not null;index" validate:"required,gt=0"`
	AuthorName  string    `json:"author_name" gorm:"size:100;not null" validate:"required,max=100"`
	Text        string    `json:"text" gorm:"type:text;not null" validate:"required"`
	CreatedDate time.Time `json:"created_date" gorm:"not null" validate:"required"`
	Flagged     bool      `json:"flagged" gorm:"not null;default:false"`
}
