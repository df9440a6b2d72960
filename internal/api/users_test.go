package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yuan-yexi/post-maker/internal/auth"
	"github.com/yuan-yexi/post-maker/internal/db"
	apperrors "github.com/yuan-yexi/post-maker/internal/errors"
)

type fakeUserStore struct {
	created []*db.User
	nextID  int64
	dup     bool
}

func (f *fakeUserStore) Create(ctx context.Context, user *db.User) (int64, error) {
	if f.dup {
		return 0, db.ErrDuplicateUser
	}
	f.nextID++
	f.created = append(f.created, user)
	return f.nextID, nil
}

const validUserBody = `{
	"email_address": "Jane.Doe@Example.com",
	"user_name": "JaneD",
	"role": "editor",
	"first_name": "Jane",
	"last_name": "Doe",
	"password": "correct-horse"
}`

func TestCreateUser(t *testing.T) {
	store := &fakeUserStore{}
	h := NewUserHandlers(store)

	w := httptest.NewRecorder()
	apperrors.HandleFunc(h.CreateUser)(w, postJSON(t, "/create_user/", validUserBody))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp CreateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Response != 1 {
		t.Errorf("expected response id 1, got %d", resp.Response)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(store.created))
	}
	stored := store.created[0]

	if stored.EmailAddress != "jane.doe@example.com" {
		t.Errorf("expected normalized email, got %q", stored.EmailAddress)
	}
	if stored.UserName != "janed" {
		t.Errorf("expected normalized user_name, got %q", stored.UserName)
	}
	if stored.HashedPassword == "correct-horse" {
		t.Error("password must not be stored in plain text")
	}
	if !auth.CheckPassword("correct-horse", stored.HashedPassword) {
		t.Error("stored hash should verify against the submitted password")
	}
	if stored.Role != db.RoleEditor {
		t.Errorf("expected role editor, got %s", stored.Role)
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	h := NewUserHandlers(&fakeUserStore{dup: true})

	w := httptest.NewRecorder()
	apperrors.HandleFunc(h.CreateUser)(w, postJSON(t, "/create_user/", validUserBody))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp apperrors.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error.Message != "Email already exists." {
		t.Errorf("expected duplicate message, got %q", resp.Error.Message)
	}
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{{`},
		{"missing email", `{"user_name": "u", "role": "admin", "password": "p"}`},
		{"bad email format", `{"email_address": "not-an-email", "user_name": "u", "role": "admin", "password": "p"}`},
		{"missing user_name", `{"email_address": "a@b.com", "role": "admin", "password": "p"}`},
		{"unknown role", `{"email_address": "a@b.com", "user_name": "u", "role": "viewer", "password": "p"}`},
		{"missing password", `{"email_address": "a@b.com", "user_name": "u", "role": "admin"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUserStore{}
			h := NewUserHandlers(store)

			w := httptest.NewRecorder()
			apperrors.HandleFunc(h.CreateUser)(w, postJSON(t, "/create_user/", tt.body))

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
			if len(store.created) != 0 {
				t.Error("invalid request must not insert a user")
			}
		})
	}
}
