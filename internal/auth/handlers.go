package auth

import (
	"errors"
	"net/http"

	apperrors "github.com/yuan-yexi/post-maker/internal/errors"
)

type Handlers struct {
	authService *Service
}

func NewHandlers(authService *Service) *Handlers {
	return &Handlers{authService: authService}
}

// Token handles the form-encoded login exchange. The form field is named
// "username" for OAuth2 password-flow compatibility but carries the email
// address.
func (h *Handlers) Token(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return apperrors.BadRequest("invalid form body")
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		return apperrors.ValidationError("username and password are required")
	}

	user, err := h.authService.Authenticate(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			return apperrors.UserNotFound()
		case errors.Is(err, ErrInvalidCredentials):
			return apperrors.InvalidCredentials()
		default:
			return apperrors.InternalError("login failed").WithCause(err)
		}
	}

	grant, err := h.authService.CreateAccessToken(r.Context(), user.EmailAddress)
	if err != nil {
		return apperrors.InternalError("failed to create access token").WithCause(err)
	}

	apperrors.WriteJSON(w, apperrors.GetRequestID(r.Context()), http.StatusOK, grant)
	return nil
}

// ProtectedRoute returns the identity behind the presented bearer token.
func (h *Handlers) ProtectedRoute(w http.ResponseWriter, r *http.Request) error {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		return apperrors.Unauthorized("not authenticated")
	}

	apperrors.WriteJSON(w, apperrors.GetRequestID(r.Context()), http.StatusOK, identity)
	return nil
}
