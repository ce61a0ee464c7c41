package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name: "valid comment",
			comment: &Comment{
				ID:          1,
				PostID:      1,
				AuthorName:  "Reader",
				Text:        "Nice post",
				CreatedDate: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing post id",
			comment: &Comment{
				ID:          1,
				AuthorName:  "Reader",
				Text:        "Nice post",
				CreatedDate: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing author name",
			comment: &Comment{
				ID:          1,
				PostID:      1,
				Text:        "Nice post",
				CreatedDate: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "author name too long",
			comment: &Comment{
				ID:          1,
				PostID:      1,
				AuthorName:  strings.Repeat("a", 101),
				Text:        "Nice post",
				CreatedDate: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing text",
			comment: &Comment{
				ID:          1,
				PostID:      1,
				AuthorName:  "Reader",
				CreatedDate: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero created date",
			comment: &Comment{
				ID:         1,
				PostID:     1,
				AuthorName: "Reader",
				Text:       "Nice post",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentBeforeCreate(t *testing.T) {
	comment := &Comment{PostID: 1, AuthorName: "Reader", Text: "Hello"}
	comment.BeforeCreate()
	assert.False(t, comment.CreatedDate.IsZero())
	assert.False(t, comment.Flagged)
}
