package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/yuan-yexi/post-maker/internal/auth"
	"github.com/yuan-yexi/post-maker/internal/db"
	apperrors "github.com/yuan-yexi/post-maker/internal/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserStore is the slice of the user repository the handlers need.
type UserStore interface {
	Create(ctx context.Context, user *db.User) (int64, error)
}

type UserHandlers struct {
	users UserStore
}

func NewUserHandlers(users UserStore) *UserHandlers {
	return &UserHandlers{users: users}
}

type CreateUserRequest struct {
	EmailAddress string      `json:"email_address"`
	UserName     string      `json:"user_name"`
	Role         db.UserRole `json:"role"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Password     string      `json:"password"`
}

// CreateUser registers a user with a hashed password. Uniqueness of
// email_address and user_name is enforced by the database; the losing side of
// a concurrent duplicate insert gets the same 400 as a plain duplicate.
func (h *UserHandlers) CreateUser(w http.ResponseWriter, r *http.Request) error {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}

	if err := validateCreateUserRequest(&req); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError("failed to process password").WithCause(err)
	}

	id, err := h.users.Create(r.Context(), &db.User{
		EmailAddress:   db.NormalizeIdentifier(req.EmailAddress),
		UserName:       db.NormalizeIdentifier(req.UserName),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           req.Role,
		HashedPassword: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, db.ErrDuplicateUser) {
			return apperrors.DuplicateUser()
		}
		return apperrors.DatabaseError("failed to create user").WithCause(err)
	}

	apperrors.WriteJSON(w, apperrors.GetRequestID(r.Context()), http.StatusOK, CreateResponse{Response: id})
	return nil
}

func validateCreateUserRequest(req *CreateUserRequest) error {
	if req.EmailAddress == "" {
		return apperrors.ValidationError("email_address is required")
	}
	if !emailRegex.MatchString(req.EmailAddress) {
		return apperrors.ValidationError("invalid email_address format")
	}
	if req.UserName == "" {
		return apperrors.ValidationError("user_name is required")
	}
	if !req.Role.Valid() {
		return apperrors.ValidationError("role must be one of: admin, editor")
	}
	if req.Password == "" {
		return apperrors.ValidationError("password is required")
	}
	return nil
}
