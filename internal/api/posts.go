package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/yuan-yexi/post-maker/internal/db"
	apperrors "github.com/yuan-yexi/post-maker/internal/errors"
)

// PostStore is the slice of the post repository the handlers need.
type PostStore interface {
	Create(ctx context.Context, post *db.Post) (int64, error)
	List(ctx context.Context) ([]db.Post, error)
}

type PostHandlers struct {
	posts PostStore
}

func NewPostHandlers(posts PostStore) *PostHandlers {
	return &PostHandlers{posts: posts}
}

type CreatePostRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Body        string        `json:"body"`
	Status      db.PostStatus `json:"status"`
	UserID      *int64        `json:"user_id"`
}

// CreateResponse carries the generated id of an inserted row.
type CreateResponse struct {
	Response int64 `json:"response"`
}

// ListPosts returns every post, unauthenticated, in insertion order.
func (h *PostHandlers) ListPosts(w http.ResponseWriter, r *http.Request) error {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		return apperrors.DatabaseError("failed to list posts").WithCause(err)
	}

	apperrors.WriteJSON(w, apperrors.GetRequestID(r.Context()), http.StatusOK, posts)
	return nil
}

// CreatePost inserts a post bound to the user_id submitted in the body. The
// authenticated identity gates access but is not cross-checked against
// user_id; ownership is whatever the client claims.
func (h *PostHandlers) CreatePost(w http.ResponseWriter, r *http.Request) error {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}

	if err := validateCreatePostRequest(&req); err != nil {
		return err
	}

	id, err := h.posts.Create(r.Context(), &db.Post{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		Status:      req.Status,
		UserID:      req.UserID,
	})
	if err != nil {
		return apperrors.DatabaseError("failed to create post").WithCause(err)
	}

	apperrors.WriteJSON(w, apperrors.GetRequestID(r.Context()), http.StatusOK, CreateResponse{Response: id})
	return nil
}

func validateCreatePostRequest(req *CreatePostRequest) error {
	if req.Title == "" {
		return apperrors.ValidationError("title is required")
	}
	if req.Body == "" {
		return apperrors.ValidationError("body is required")
	}
	if !req.Status.Valid() {
		return apperrors.ValidationError("status must be one of: draft, published")
	}
	if req.UserID == nil {
		return apperrors.ValidationError("user_id is required")
	}
	return nil
}
