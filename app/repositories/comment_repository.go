package repositories

import (
	"fmt"
	"sort"

	"soapbox/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create creates a new comment
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id
		comment.BeforeCreate()

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}

		key := []byte(fmt.Sprintf("%s%d", CommentKeyPrefix, comment.ID))
		return txn.Set(key, data)
	})
}

// ListByPost retrieves all comments for a post sorted by created date,
// oldest first.
func (r *BadgerCommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	comments, err := r.scan(func(c *models.Comment) bool {
		return c.PostID == postID
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedDate.Before(comments[j].CreatedDate)
	})
	return comments, nil
}

// ListFlagged retrieves every comment marked for moderation review.
func (r *BadgerCommentRepository) ListFlagged() ([]*models.Comment, error) {
	return r.scan(func(c *models.Comment) bool {
		return c.Flagged
	})
}

// scan iterates the comment keyspace and keeps entries matching the filter.
func (r *BadgerCommentRepository) scan(keep func(*models.Comment) bool) ([]*models.Comment, error) {
	var comments []*models.Comment

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var comment models.Comment
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %v", err)
			}

			if keep(&comment) {
				comments = append(comments, &comment)
			}
		}
		return nil
	})

	return comments, err
}
