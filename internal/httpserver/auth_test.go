package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodexpress/internal/domain"
	usersvc "foodexpress/internal/service/user"
)

func TestRegisterHandler_Created(t *testing.T) {
	deps := testDeps()
	users := &stubUserService{user: &domain.User{ID: 3, Email: "user@example.com", FullName: "Jane"}}
	deps.UserSvc = users
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodPost, "/auth/register", `{"email":"user@example.com","password":"pw","full_name":"Jane"}`, "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"email":"user@example.com"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if users.lastName != "Jane" {
		t.Fatalf("expected legacy full_name to be accepted, got %q", users.lastName)
	}
}

func TestRegisterHandler_Duplicate(t *testing.T) {
	deps := testDeps()
	deps.UserSvc = &stubUserService{err: &domain.Error{Kind: domain.ErrAlreadyExists, Msg: "a user with this email already exists"}}
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodPost, "/auth/register", `{"email":"user@example.com","password":"pw"}`, "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already exists") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLoginHandler_ReturnsToken(t *testing.T) {
	deps := testDeps()
	deps.UserSvc = &stubUserService{login: &usersvc.LoginResult{AccessToken: "jwt", ExpiresIn: 3600, User: &domain.User{ID: 9}}}
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"pw"}`, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var body loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.AccessToken != "jwt" || body.UserID != 9 || body.TokenType != "Bearer" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	deps := testDeps()
	deps.UserSvc = &stubUserService{err: usersvc.ErrInvalidCredentials}
	router := newTestRouter(t, deps)

	rec := do(router, http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"bad"}`, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAuthMiddleware_StatusCodes(t *testing.T) {
	router := newTestRouter(t, testDeps())

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"absent", "", http.StatusUnauthorized},
		{"expired", "expired-token", http.StatusUnauthorized},
		{"malformed", "garbage", http.StatusUnprocessableEntity},
		{"valid", "good-token", http.StatusOK},
	}
	for _, tc := range cases {
		rec := do(router, http.MethodGet, "/account/me", "", tc.token)
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.name, tc.want, rec.Code, rec.Body.String())
		}
		if tc.want != http.StatusOK && !strings.Contains(rec.Body.String(), `"msg"`) {
			t.Fatalf("%s: expected msg body, got %s", tc.name, rec.Body.String())
		}
	}
}

func TestAuthMiddleware_RequiresBearerScheme(t *testing.T) {
	router := newTestRouter(t, testDeps())

	cases := []struct {
		header string
		want   int
	}{
		{"good-token", http.StatusUnprocessableEntity},
		{"Bearer", http.StatusUnprocessableEntity},
		{"Bearer   ", http.StatusUnauthorized},
		{"Token good-token", http.StatusUnprocessableEntity},
		{"bearer good-token", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/account/me", nil)
		req.Header.Set("Authorization", tc.header)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%q: expected %d, got %d body=%s", tc.header, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestTestTokenAndLogout(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := do(router, http.MethodGet, "/auth/test-token", "", "good-token")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"userId":7`) {
		t.Fatalf("unexpected test-token response %d %s", rec.Code, rec.Body.String())
	}

	rec = do(router, http.MethodPost, "/auth/logout", "", "good-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
