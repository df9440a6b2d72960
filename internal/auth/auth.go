package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/yuan-yexi/post-maker/internal/db"
	"golang.org/x/crypto/bcrypt"
)

const (
	// TokenExpiry is how long an issued access token stays valid.
	TokenExpiry = 30 * time.Minute

	// tokenEntropyBytes is the random entropy behind each access token.
	tokenEntropyBytes = 32

	BcryptCost = 12
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenExpired       = errors.New("token expired")
)

// HashPassword produces a salted one-way hash suitable for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plain password against a stored hash. The bcrypt
// comparison is the only timing-safe machinery needed here.
func CheckPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// UserStore is the slice of the user repository the auth flow needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*db.User, error)
}

// TokenStore is the slice of the token repository the auth flow needs.
type TokenStore interface {
	Create(ctx context.Context, token *db.Token) (int64, error)
	GetByID(ctx context.Context, id int64) (*db.Token, error)
	GetByAccessToken(ctx context.Context, accessToken string) (*db.Token, error)
}

// TokenGrant is the response to a successful login.
type TokenGrant struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Identity is the result of validating a presented token.
type Identity struct {
	UserID         string    `json:"user_id"`
	ExpirationDate time.Time `json:"expiration_date"`
}

type Service struct {
	users  UserStore
	tokens TokenStore
}

func NewService(users UserStore, tokens TokenStore) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
	}
}

// Authenticate exchanges an email and password for the user record. Absent
// users and lookup failures both come back as ErrUserNotFound so the caller
// can answer 401 without leaking database state.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*db.User, error) {
	user, err := s.users.GetByEmail(ctx, db.NormalizeIdentifier(email))
	if err != nil {
		return nil, ErrUserNotFound
	}

	if !CheckPassword(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// CreateAccessToken issues a fresh bearer token for userID, expiring in
// TokenExpiry. Every login gets its own row; earlier tokens for the same user
// stay valid until they expire.
func (s *Service) CreateAccessToken(ctx context.Context, userID string) (*TokenGrant, error) {
	accessToken, err := generateAccessToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	id, err := s.tokens.Create(ctx, &db.Token{
		UserID:         userID,
		AccessToken:    accessToken,
		ExpirationDate: time.Now().UTC().Add(TokenExpiry),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store access token: %w", err)
	}

	// Read the inserted row back so the grant reflects what was persisted.
	stored, err := s.tokens.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read back access token: %w", err)
	}

	return &TokenGrant{
		AccessToken: stored.AccessToken,
		TokenType:   "bearer",
	}, nil
}

// CurrentUser validates a presented access token against the store. A token
// absent from the store fails the same way an expired one does: 401 at the
// handler boundary.
func (s *Service) CurrentUser(ctx context.Context, accessToken string) (*Identity, error) {
	token, err := s.tokens.GetByAccessToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, db.ErrTokenNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	if !time.Now().UTC().Before(token.ExpirationDate) {
		return nil, ErrTokenExpired
	}

	return &Identity{
		UserID:         token.UserID,
		ExpirationDate: token.ExpirationDate,
	}, nil
}

// generateAccessToken returns an opaque URL-safe token string backed by
// tokenEntropyBytes of cryptographic randomness.
func generateAccessToken() (string, error) {
	buf := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
