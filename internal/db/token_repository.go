package db

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrTokenNotFound = errors.New("token not found")

// Token is one issued bearer token. UserID is a string identity reference, not
// an enforced foreign key. Rows are never deleted; expired rows simply stop
// validating.
type Token struct {
	ID             int64
	UserID         string
	AccessToken    string
	ExpirationDate time.Time
}

type TokenRepository struct {
	db *DB
}

func NewTokenRepository(db *DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, token *Token) (int64, error) {
	query := `
		INSERT INTO tokens (user_id, access_token, expiration_date)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		token.UserID, token.AccessToken, token.ExpirationDate,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *TokenRepository) GetByID(ctx context.Context, id int64) (*Token, error) {
	query := `
		SELECT id, user_id, access_token, expiration_date
		FROM tokens
		WHERE id = $1
	`

	token := &Token{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&token.ID, &token.UserID, &token.AccessToken, &token.ExpirationDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	return token, nil
}

func (r *TokenRepository) GetByAccessToken(ctx context.Context, accessToken string) (*Token, error) {
	query := `
		SELECT id, user_id, access_token, expiration_date
		FROM tokens
		WHERE access_token = $1
	`

	token := &Token{}
	err := r.db.QueryRowContext(ctx, query, accessToken).Scan(
		&token.ID, &token.UserID, &token.AccessToken, &token.ExpirationDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	return token, nil
}
