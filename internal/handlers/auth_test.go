package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/greenpress/apiserver/internal/auth"
	"github.com/greenpress/apiserver/internal/services"
	"github.com/greenpress/apiserver/internal/store"
	"github.com/greenpress/apiserver/types"
)

type fakeUserRepo struct {
	nextID int
	users  map[string]types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]types.User)}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (types.User, error) {
	user, ok := f.users[username]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	if _, ok := f.users[user.Username]; ok {
		return types.User{}, store.ErrConflict
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.Username] = user
	return user, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, username, role string) (types.User, error) {
	user, ok := f.users[username]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	user.Role = role
	f.users[username] = user
	return user, nil
}

func newAuthTestRouter(t *testing.T) (*chi.Mux, *auth.TokenManager) {
	t.Helper()

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	userService := services.NewUserService(newFakeUserRepo())

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, userService, tokens)
	})
	return router, tokens
}

func postJSON(t *testing.T, router http.Handler, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerStaff(t *testing.T, router http.Handler, username, role string) string {
	t.Helper()

	payload := map[string]string{"username": username, "password": "secret123"}
	if role != "" {
		payload["role"] = role
	}
	w := postJSON(t, router, "/auth/register", payload, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", username, w.Code, w.Body.String())
	}

	var resp AuthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token in the register response")
	}
	return resp.Token
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return resp.Error
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	router, tokens := newAuthTestRouter(t)

	token := registerStaff(t, router, "alice", "")

	principal, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if principal.Username != "alice" {
		t.Fatalf("unexpected principal username %q", principal.Username)
	}
	if principal.Role != types.RoleWriter {
		t.Fatalf("expected default writer role, got %q", principal.Role)
	}
}

func TestRegisterValidation(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := postJSON(t, router, "/auth/register", map[string]string{"username": "alice"}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing password: status %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "username and password are required" {
		t.Fatalf("unexpected error message %q", msg)
	}

	w = postJSON(t, router, "/auth/register", map[string]string{
		"username": "bob", "password": "secret123", "role": "overlord",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid role: status %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "invalid role" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	registerStaff(t, router, "alice", "")

	w := postJSON(t, router, "/auth/register", map[string]string{
		"username": "alice", "password": "another",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate username: status %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "username already exists" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestLogin(t *testing.T) {
	router, _ := newAuthTestRouter(t)
	registerStaff(t, router, "alice", "")

	w := postJSON(t, router, "/auth/login", map[string]string{
		"username": "alice", "password": "secret123",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", w.Code, w.Body.String())
	}
	var resp AuthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token in the login response")
	}
	if resp.User.Username != "alice" {
		t.Fatalf("unexpected user in login response: %q", resp.User.Username)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := postJSON(t, router, "/auth/login", map[string]string{
		"username": "ghost", "password": "whatever",
	}, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown user: status %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "user not found" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newAuthTestRouter(t)
	registerStaff(t, router, "alice", "")

	w := postJSON(t, router, "/auth/login", map[string]string{
		"username": "alice", "password": "not-it",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("wrong password: status %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "wrong password" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestMe(t *testing.T) {
	router, _ := newAuthTestRouter(t)
	token := registerStaff(t, router, "alice", "")

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("me: status %d body %s", w.Code, w.Body.String())
	}
	var user types.User
	if err := json.NewDecoder(w.Body).Decode(&user); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected username %q", user.Username)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatal("password hash must never appear in responses")
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me without token: status %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	userService := services.NewUserService(newFakeUserRepo())

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, userService, tokens)
	})
	router.With(RequireAuth(tokens), RequireRole(types.RoleAdmin)).
		Get("/restricted", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

	adminToken := registerStaff(t, router, "root", types.RoleAdmin)
	writerToken := registerStaff(t, router, "scribe", "")

	req := httptest.NewRequest(http.MethodGet, "/restricted", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/restricted", nil)
	req.Header.Set("Authorization", "Bearer "+writerToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("writer token: status %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/restricted", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin token: status %d", w.Code)
	}
}
