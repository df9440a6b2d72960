package db

import (
	"context"
	"database/sql"
	"time"
)

// PostStatus is the closed set of permitted status values.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

func (s PostStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished:
		return true
	}
	return false
}

type Post struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Body           string     `json:"body"`
	Status         PostStatus `json:"status"`
	UserID         *int64     `json:"user_id"`
	CreatedAt      time.Time  `json:"created_at"`
	LastModifiedAt time.Time  `json:"last_modified_at"`
}

type PostRepository struct {
	db *DB
}

func NewPostRepository(db *DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *Post) (int64, error) {
	query := `
		INSERT INTO posts (title, description, body, status, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var userID sql.NullInt64
	if post.UserID != nil {
		userID = sql.NullInt64{Int64: *post.UserID, Valid: true}
	}

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Description, post.Body, post.Status, userID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// List returns every post in insertion order. No filtering, no pagination.
func (r *PostRepository) List(ctx context.Context) ([]Post, error) {
	query := `
		SELECT id, title, description, body, status, user_id, created_at, last_modified_at
		FROM posts
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var post Post
		var userID sql.NullInt64
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Description, &post.Body, &post.Status,
			&userID, &post.CreatedAt, &post.LastModifiedAt,
		); err != nil {
			return nil, err
		}
		if userID.Valid {
			post.UserID = &userID.Int64
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
