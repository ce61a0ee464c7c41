package mock

import (
	"sort"
	"sync"

	"soapbox/app/models"
	"soapbox/app/repositories"
)

type PostRepository struct {
	posts  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex
}

type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]*models.Post),
		nextID: 1,
	}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]*models.Comment),
		nextID:   1,
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[int]*models.Post)
	m.nextID = 1
}

// PostRepository implementation

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = m.nextID
	m.nextID++
	post.BeforeCreate()
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *PostRepository) List() ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var posts []*models.Post
	for _, post := range m.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PublishedDate.After(posts[j].PublishedDate)
	})
	return posts, nil
}

// CommentRepository implementation

func (m *CommentRepository) Create(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	m.nextID++
	comment.BeforeCreate()
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedDate.Before(comments[j].CreatedDate)
	})
	return comments, nil
}

func (m *CommentRepository) ListFlagged() ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.Flagged {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}
