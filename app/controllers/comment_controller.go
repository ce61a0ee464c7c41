package controllers

import (
	"encoding/json"
	"net/http"

	"soapbox/app/models"
	"soapbox/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

type createCommentRequest struct {
	PostID     int    `json:"post_id"`
	AuthorName string `json:"author_name"`
	Text       string `json:"text"`
}

// Create handles creating a new comment. The moderation verdict is obtained
// before the write, so the response always carries the final flagged value.
// An unknown post and a failed write share one generic 400.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid JSON format.")
		return
	}

	if req.PostID == 0 || req.AuthorName == "" || req.Text == "" {
		sendError(w, http.StatusBadRequest, "post_id, author_name, and text are required.")
		return
	}

	comment := &models.Comment{
		PostID:     req.PostID,
		AuthorName: req.AuthorName,
		Text:       req.Text,
	}
	if err := cc.commentService.CreateComment(r.Context(), comment); err != nil {
		sendError(w, http.StatusBadRequest, "Post not found or internal error.")
		return
	}

	sendJSON(w, http.StatusCreated, comment)
}

// Flagged handles listing every comment marked for moderation review
func (cc *CommentController) Flagged(w http.ResponseWriter, r *http.Request) {
	comments, err := cc.commentService.ListFlagged()
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if comments == nil {
		comments = []*models.Comment{}
	}
	sendJSON(w, http.StatusOK, comments)
}

// Options answers cross-origin pre-flight requests
func (cc *CommentController) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
