package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"vidtube/internal/domain/model"
	"vidtube/internal/handler"
	"vidtube/internal/middleware"
	"vidtube/internal/repository"
	"vidtube/internal/token"
	"vidtube/internal/usecase"
	"vidtube/internal/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Fixture: インメモリのUserRepository
// =====================

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*model.User{}}
}

func (r *memoryUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) FindByID(ctx context.Context, userID string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *memoryUserRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepo) SetRefreshToken(ctx context.Context, userID, tokenValue string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.RefreshToken = &tokenValue
	return nil
}

func (r *memoryUserRepo) ClearRefreshToken(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.RefreshToken = nil
	return nil
}

func (r *memoryUserRepo) RotateRefreshToken(ctx context.Context, userID, presented, next string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if u.RefreshToken == nil || *u.RefreshToken != presented {
		return repository.ErrRefreshTokenMismatch
	}
	u.RefreshToken = &next
	return nil
}

func (r *memoryUserRepo) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *memoryUserRepo) UpdateAccount(ctx context.Context, userID, fullName, email string) error {
	return nil
}
func (r *memoryUserRepo) UpdateAvatar(ctx context.Context, userID, url string) error     { return nil }
func (r *memoryUserRepo) UpdateCoverImage(ctx context.Context, userID, url string) error { return nil }

func cloneUser(u *model.User) *model.User {
	clone := *u
	if u.RefreshToken != nil {
		v := *u.RefreshToken
		clone.RefreshToken = &v
	}
	return &clone
}

// =====================
// Fixture: サーバー
// =====================

type authFixture struct {
	echo  *echo.Echo
	repo  *memoryUserRepo
	alice *model.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	repo := newMemoryUserRepo()
	tokens := token.NewService("access-secret", "refresh-secret", 15*time.Minute, 10*24*time.Hour)
	uc := usecase.NewAuthUsecase(repo, tokens, nil, nil, validator.NewAuthValidator())

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	alice := &model.User{
		ID:           uuid.NewString(),
		Username:     "alice",
		Email:        "a@x.com",
		FullName:     "Alice",
		Avatar:       "https://cdn.example/alice.png",
		PasswordHash: string(hash),
	}
	require.NoError(t, repo.Create(context.Background(), alice))

	e := echo.New()
	authMW := middleware.AuthJWT(tokens, repo)
	h := handler.NewAuthHandler(uc, 15*time.Minute, 10*24*time.Hour, false)
	h.RegisterRoutes(e.Group("/api/v1"), authMW)

	return &authFixture{echo: e, repo: repo, alice: alice}
}

func (f *authFixture) postJSON(t *testing.T, path string, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

// =====================
// Login
// =====================

func TestLoginEndpoint_SetsAuthCookies(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.postJSON(t, "/api/v1/users/login", `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	access := cookieByName(t, rec, "accessToken")
	refresh := cookieByName(t, rec, "refreshToken")

	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)
	assert.NotEmpty(t, access.Value)
	assert.NotEmpty(t, refresh.Value)

	//レスポンス封筒の形
	var envelope struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
		Data       struct {
			User   usecase.UserDTO   `json:"user"`
			Tokens usecase.TokenPair `json:"tokens"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, http.StatusOK, envelope.StatusCode)
	assert.Equal(t, "alice", envelope.Data.User.Username)
	assert.Equal(t, refresh.Value, envelope.Data.Tokens.RefreshToken)

	//レスポンスにハッシュやセッションの生値が漏れていない
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.postJSON(t, "/api/v1/users/login", `{"username":"alice","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid user credentials")
}

// =====================
// Refresh（Cookieフロー）
// =====================

func TestRefreshEndpoint_RotatesCookie(t *testing.T) {
	f := newAuthFixture(t)

	login := f.postJSON(t, "/api/v1/users/login", `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, login.Code)
	oldRefresh := cookieByName(t, login, "refreshToken")

	rec := f.postJSON(t, "/api/v1/users/refresh-token", "", oldRefresh)
	require.Equal(t, http.StatusOK, rec.Code)

	newRefresh := cookieByName(t, rec, "refreshToken")
	assert.NotEqual(t, oldRefresh.Value, newRefresh.Value)

	//旧トークンの再提示はリプレイとして401
	replay := f.postJSON(t, "/api/v1/users/refresh-token", "", oldRefresh)
	assert.Equal(t, http.StatusUnauthorized, replay.Code)
	assert.Contains(t, replay.Body.String(), "refresh token is expired or used")

	//新トークンは引き続き使える
	next := f.postJSON(t, "/api/v1/users/refresh-token", "", newRefresh)
	assert.Equal(t, http.StatusOK, next.Code)
}

func TestRefreshEndpoint_BodyFallback(t *testing.T) {
	f := newAuthFixture(t)

	login := f.postJSON(t, "/api/v1/users/login", `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, login.Code)
	refresh := cookieByName(t, login, "refreshToken")

	rec := f.postJSON(t, "/api/v1/users/refresh-token", `{"refreshToken":"`+refresh.Value+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshEndpoint_MissingToken(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.postJSON(t, "/api/v1/users/refresh-token", `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized request")
}

// =====================
// Logout
// =====================

func TestLogoutEndpoint_InvalidatesSession(t *testing.T) {
	f := newAuthFixture(t)

	login := f.postJSON(t, "/api/v1/users/login", `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, login.Code)
	access := cookieByName(t, login, "accessToken")
	refresh := cookieByName(t, login, "refreshToken")

	rec := f.postJSON(t, "/api/v1/users/logout", "", access)
	require.Equal(t, http.StatusOK, rec.Code)

	//Cookieは失効させる
	cleared := cookieByName(t, rec, "refreshToken")
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.Expires.Before(time.Now()))

	//保存値が消えているのでリフレッシュは401
	replay := f.postJSON(t, "/api/v1/users/refresh-token", "", refresh)
	assert.Equal(t, http.StatusUnauthorized, replay.Code)
}

func TestLogoutEndpoint_RequiresAuth(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.postJSON(t, "/api/v1/users/logout", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =====================
// ChangePassword
// =====================

func TestChangePasswordEndpoint_SessionSurvives(t *testing.T) {
	f := newAuthFixture(t)

	login := f.postJSON(t, "/api/v1/users/login", `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, login.Code)
	access := cookieByName(t, login, "accessToken")
	refresh := cookieByName(t, login, "refreshToken")

	rec := f.postJSON(t, "/api/v1/users/change-password",
		`{"oldPassword":"secret1","newPassword":"newsecret"}`, access)
	require.Equal(t, http.StatusOK, rec.Code)

	//旧パスワードでは入れない
	old := f.postJSON(t, "/api/v1/users/login", `{"username":"alice","password":"secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, old.Code)

	//既存セッションのリフレッシュトークンは生きている
	next := f.postJSON(t, "/api/v1/users/refresh-token", "", refresh)
	assert.Equal(t, http.StatusOK, next.Code)
}
