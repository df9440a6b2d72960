package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateUser = errors.New("email address or user name already exists")

// UserRole is the closed set of permitted role values.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor:
		return true
	}
	return false
}

type User struct {
	ID             int64     `json:"id"`
	EmailAddress   string    `json:"email_address"`
	UserName       string    `json:"user_name"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Role           UserRole  `json:"role"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	LastModifiedAt time.Time `json:"last_modified_at"`
}

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and returns the generated id. A violation of the
// email_address or user_name unique constraints is reported as ErrDuplicateUser;
// the losing insert of a concurrent race gets the same answer.
func (r *UserRepository) Create(ctx context.Context, user *User) (int64, error) {
	query := `
		INSERT INTO users (email_address, user_name, first_name, last_name, role, hashed_password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		user.EmailAddress, user.UserName, user.FirstName, user.LastName, user.Role, user.HashedPassword,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUser
		}
		return 0, err
	}

	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email_address, user_name, first_name, last_name, role, hashed_password, created_at, last_modified_at
		FROM users
		WHERE email_address = $1
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.EmailAddress, &user.UserName, &user.FirstName, &user.LastName,
		&user.Role, &user.HashedPassword, &user.CreatedAt, &user.LastModifiedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, email_address, user_name, first_name, last_name, role, hashed_password, created_at, last_modified_at
		FROM users
		WHERE id = $1
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.EmailAddress, &user.UserName, &user.FirstName, &user.LastName,
		&user.Role, &user.HashedPassword, &user.CreatedAt, &user.LastModifiedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
