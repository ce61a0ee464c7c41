package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"soapbox/app/models"
	"soapbox/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// postSummary is the list projection: no content, no comments.
type postSummary struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	PublishedDate time.Time `json:"published_date"`
}

// postPayload is the full projection returned by detail and create.
type postPayload struct {
	ID            int               `json:"id"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	PublishedDate time.Time         `json:"published_date"`
	Comments      []*models.Comment `json:"comments"`
}

func newPostPayload(post *models.Post) postPayload {
	comments := post.Comments
	if comments == nil {
		comments = []*models.Comment{}
	}
	return postPayload{
		ID:            post.ID,
		Title:         post.Title,
		Content:       post.Content,
		PublishedDate: post.PublishedDate,
		Comments:      comments,
	}
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Index handles listing all posts, newest first
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts()
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summaries := make([]postSummary, 0, len(posts))
	for _, post := range posts {
		summaries = append(summaries, postSummary{
			ID:            post.ID,
			Title:         post.Title,
			PublishedDate: post.PublishedDate,
		})
	}

	sendJSON(w, http.StatusOK, summaries)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid JSON format.")
		return
	}

	if req.Title == "" || req.Content == "" {
		sendError(w, http.StatusBadRequest, "Title and content are required.")
		return
	}

	post := &models.Post{Title: req.Title, Content: req.Content}
	if err := pc.postService.CreatePost(post); err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sendJSON(w, http.StatusCreated, newPostPayload(post))
}

// Show handles retrieving a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		sendError(w, http.StatusNotFound, "Post not found.")
		return
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		sendError(w, http.StatusNotFound, "Post not found.")
		return
	}

	sendJSON(w, http.StatusOK, newPostPayload(post))
}

// Options answers cross-origin pre-flight requests
func (pc *PostController) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
