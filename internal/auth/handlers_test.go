package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/yuan-yexi/post-maker/internal/db"
	apperrors "github.com/yuan-yexi/post-maker/internal/errors"
)

func loginRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeErrorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apperrors.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp.Error.Message
}

func newTestHandlers(t *testing.T) (*Handlers, *Service) {
	t.Helper()
	user := userWithPassword(t, "jane@example.com", "correct-horse")
	users := &fakeUserStore{users: map[string]*db.User{"jane@example.com": user}}
	svc := NewService(users, newFakeTokenStore())
	return NewHandlers(svc), svc
}

func TestTokenHandler_Success(t *testing.T) {
	handlers, _ := newTestHandlers(t)

	w := httptest.NewRecorder()
	req := loginRequest(url.Values{"username": {"jane@example.com"}, "password": {"correct-horse"}})

	apperrors.HandleFunc(handlers.Token)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var grant TokenGrant
	if err := json.NewDecoder(w.Body).Decode(&grant); err != nil {
		t.Fatalf("failed to decode grant: %v", err)
	}
	if grant.TokenType != "bearer" {
		t.Errorf("expected token_type bearer, got %s", grant.TokenType)
	}
	if grant.AccessToken == "" {
		t.Error("expected non-empty access_token")
	}
}

func TestTokenHandler_Failures(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "unknown email",
			form:       url.Values{"username": {"nobody@example.com"}, "password": {"correct-horse"}},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "User does not exist.",
		},
		{
			name:       "wrong password",
			form:       url.Values{"username": {"jane@example.com"}, "password": {"wrong"}},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Username or password is incorrect.",
		},
		{
			name:       "missing fields",
			form:       url.Values{"username": {"jane@example.com"}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "username and password are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlers, _ := newTestHandlers(t)

			w := httptest.NewRecorder()
			apperrors.HandleFunc(handlers.Token)(w, loginRequest(tt.form))

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if msg := decodeErrorMessage(t, w); msg != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	handlers, svc := newTestHandlers(t)
	protected := Middleware(svc)(apperrors.HandleFunc(handlers.ProtectedRoute))

	login := func(t *testing.T) string {
		t.Helper()
		grant, err := svc.CreateAccessToken(context.Background(), "jane@example.com")
		if err != nil {
			t.Fatalf("failed to create token: %v", err)
		}
		return grant.AccessToken
	}

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected_route", nil)

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected_route", nil)
		req.Header.Set("Authorization", "Token abc123")

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected_route", nil)
		req.Header.Set("Authorization", "Bearer never-issued")

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
		if msg := decodeErrorMessage(t, w); msg != "Token is invalid, please login again." {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		svc.tokens.Create(context.Background(), &db.Token{
			UserID:         "jane@example.com",
			AccessToken:    "stale-token",
			ExpirationDate: time.Now().UTC().Add(-time.Minute),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected_route", nil)
		req.Header.Set("Authorization", "Bearer stale-token")

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
		if msg := decodeErrorMessage(t, w); msg != "Token has timed out, please login again." {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		token := login(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected_route", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var identity Identity
		if err := json.NewDecoder(w.Body).Decode(&identity); err != nil {
			t.Fatalf("failed to decode identity: %v", err)
		}
		if identity.UserID != "jane@example.com" {
			t.Errorf("expected user_id jane@example.com, got %s", identity.UserID)
		}
	})

	t.Run("bearer scheme is case-insensitive", func(t *testing.T) {
		token := login(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected_route", nil)
		req.Header.Set("Authorization", "bearer "+token)

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
	})
}
