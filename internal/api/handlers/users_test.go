package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eventhub/server/internal/auth"
	"github.com/eventhub/server/internal/domain/users"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	createFn     func(params users.CreateParams) (*users.User, error)
	getByEmailFn func(email string) (*users.User, error)
	getByIDFn    func(id int64) (*users.User, error)
	listFn       func() ([]users.User, error)
}

func (s stubUserRepo) Create(_ context.Context, params users.CreateParams) (*users.User, error) {
	return s.createFn(params)
}

func (s stubUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	return s.getByEmailFn(email)
}

func (s stubUserRepo) GetByID(_ context.Context, id int64) (*users.User, error) {
	return s.getByIDFn(id)
}

func (s stubUserRepo) List(_ context.Context) ([]users.User, error) {
	return s.listFn()
}

func newUsersHandler(repo users.Repository) *UsersHandler {
	return NewUsersHandler(users.NewService(repo), auth.NewTokenManager("test-secret"), "test")
}

func TestRegisterSuccess(t *testing.T) {
	repo := stubUserRepo{
		createFn: func(params users.CreateParams) (*users.User, error) {
			require.Equal(t, "Ada", params.Name)
			require.NotEqual(t, "secret", params.PasswordHash)
			return &users.User{ID: 1, Name: params.Name, Email: params.Email, PasswordHash: params.PasswordHash}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","password":"secret"}`))
	newUsersHandler(repo).Register(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, float64(1), body["id"])
	require.Equal(t, "Ada", body["name"])
	require.Equal(t, "ada@example.com", body["email"])
	require.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterEmailTaken(t *testing.T) {
	repo := stubUserRepo{
		createFn: func(users.CreateParams) (*users.User, error) {
			return nil, users.ErrEmailTaken
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","password":"secret"}`))
	newUsersHandler(repo).Register(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "Email already registered")
}

func TestRegisterInvalidBody(t *testing.T) {
	called := false
	repo := stubUserRepo{
		createFn: func(users.CreateParams) (*users.User, error) {
			called = true
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{not json"))
	newUsersHandler(repo).Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, called)
}

func TestLoginSetsTokenCookie(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)

	repo := stubUserRepo{
		getByEmailFn: func(email string) (*users.User, error) {
			return &users.User{ID: 7, Name: "Ada", Email: email, PasswordHash: hash}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"ada@example.com","password":"secret"}`))
	newUsersHandler(repo).Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, int64(7), body.ID)
	require.Equal(t, "Ada", body.Name)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	require.Equal(t, TokenCookieName, cookie.Name)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.Zero(t, cookie.Expires, "session token must not carry an expiry")

	claims, err := auth.NewTokenManager("test-secret").Validate(cookie.Value)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)
}

func TestLoginUnknownEmailIs404(t *testing.T) {
	repo := stubUserRepo{
		getByEmailFn: func(string) (*users.User, error) {
			return nil, users.ErrNotFound
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"nobody@example.com","password":"secret"}`))
	newUsersHandler(repo).Login(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "User not found")
}

func TestLoginWrongPasswordIs401(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)

	repo := stubUserRepo{
		getByEmailFn: func(email string) (*users.User, error) {
			return &users.User{ID: 7, Email: email, PasswordHash: hash}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"ada@example.com","password":"wrong"}`))
	newUsersHandler(repo).Login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid password")
	require.Empty(t, rec.Result().Cookies())
}

func TestLogoutClearsCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	newUsersHandler(stubUserRepo{}).Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "true", strings.TrimSpace(rec.Body.String()))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, TokenCookieName, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Equal(t, -1, cookies[0].MaxAge)
}

func TestListUsersOmitsPasswordHash(t *testing.T) {
	repo := stubUserRepo{
		listFn: func() ([]users.User, error) {
			return []users.User{
				{ID: 1, Name: "Ada", Email: "ada@example.com", PasswordHash: "$2a$10$hash"},
				{ID: 2, Name: "Bob", Email: "bob@example.com", PasswordHash: "$2a$10$hash"},
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	newUsersHandler(repo).List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	for _, item := range body {
		require.Len(t, item, 3)
		require.Contains(t, item, "id")
		require.Contains(t, item, "name")
		require.Contains(t, item, "email")
	}
	require.NotContains(t, rec.Body.String(), "$2a$")
}

func TestListUsersEmptyIsArray(t *testing.T) {
	repo := stubUserRepo{
		listFn: func() ([]users.User, error) {
			return []users.User{}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	newUsersHandler(repo).List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestProfileNoCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	newUsersHandler(stubUserRepo{}).Profile(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Unauthorized", body["message"])
	require.Contains(t, body, "user")
	require.Nil(t, body["user"])
}

func TestProfileInvalidToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "not-a-token"})
	newUsersHandler(stubUserRepo{}).Profile(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Invalid token", body["message"])
	require.Nil(t, body["user"])
}

func TestProfileDeletedUser(t *testing.T) {
	repo := stubUserRepo{
		getByIDFn: func(int64) (*users.User, error) {
			return nil, users.ErrNotFound
		},
	}

	token, err := auth.NewTokenManager("test-secret").Generate(7, "ada@example.com")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	newUsersHandler(repo).Profile(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "User not found", body["message"])
	require.Nil(t, body["user"])
}

func TestProfileRereadsStore(t *testing.T) {
	repo := stubUserRepo{
		getByIDFn: func(id int64) (*users.User, error) {
			require.Equal(t, int64(7), id)
			return &users.User{ID: 7, Name: "Renamed", Email: "renamed@example.com"}, nil
		},
	}

	token, err := auth.NewTokenManager("test-secret").Generate(7, "stale@example.com")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	newUsersHandler(repo).Profile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Renamed", body.Name)
	require.Equal(t, "renamed@example.com", body.Email)
	require.Equal(t, int64(7), body.ID)
}

func TestProfileStoreError(t *testing.T) {
	repo := stubUserRepo{
		getByIDFn: func(int64) (*users.User, error) {
			return nil, errors.New("connection reset")
		},
	}

	token, err := auth.NewTokenManager("test-secret").Generate(7, "ada@example.com")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	newUsersHandler(repo).Profile(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
