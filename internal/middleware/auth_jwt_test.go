package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vidtube/internal/domain/model"
	"vidtube/internal/middleware"
	"vidtube/internal/repository"
	"vidtube/internal/token"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================
// Fixture
// =====================

// FindByIDだけ動く最小リポジトリ
type staticUserRepo struct {
	user *model.User
}

func (r *staticUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (r *staticUserRepo) FindByID(ctx context.Context, userID string) (*model.User, error) {
	if r.user == nil || r.user.ID != userID {
		return nil, repository.ErrUserNotFound
	}
	return r.user, nil
}

func (r *staticUserRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	return nil, repository.ErrUserNotFound
}

func (r *staticUserRepo) SetRefreshToken(ctx context.Context, userID, tokenValue string) error {
	return nil
}
func (r *staticUserRepo) ClearRefreshToken(ctx context.Context, userID string) error { return nil }
func (r *staticUserRepo) RotateRefreshToken(ctx context.Context, userID, presented, next string) error {
	return nil
}
func (r *staticUserRepo) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	return nil
}
func (r *staticUserRepo) UpdateAccount(ctx context.Context, userID, fullName, email string) error {
	return nil
}
func (r *staticUserRepo) UpdateAvatar(ctx context.Context, userID, url string) error     { return nil }
func (r *staticUserRepo) UpdateCoverImage(ctx context.Context, userID, url string) error { return nil }

func testUser() *model.User {
	return &model.User{
		ID:       "8a6e0804-2bd0-4672-b79d-d97027f9071a",
		Username: "alice",
		Email:    "a@x.com",
		FullName: "Alice",
	}
}

// ミドルウェアを通った後のユーザーを返すテスト用ハンドラ
func echoUserHandler(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, user)
	}
}

func doRequest(t *testing.T, tokens *token.Service, users repository.UserRepository, setup func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.AuthJWT(tokens, users)(echoUserHandler(t))
	require.NoError(t, h(c))
	return rec
}

// =====================
// Tests
// =====================

func TestAuthJWT_MissingToken(t *testing.T) {
	tokens := token.NewService("access", "refresh", 15*time.Minute, 24*time.Hour)

	rec := doRequest(t, tokens, &staticUserRepo{}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized request")
}

func TestAuthJWT_CookieToken(t *testing.T) {
	tokens := token.NewService("access", "refresh", 15*time.Minute, 24*time.Hour)
	user := testUser()

	access, err := tokens.IssueAccessToken(user)
	require.NoError(t, err)

	rec := doRequest(t, tokens, &staticUserRepo{user: user}, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: access})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	//secretsはcontextに載らない
	assert.NotContains(t, rec.Body.String(), "passwordHash")
	assert.NotContains(t, rec.Body.String(), "refreshToken")
}

func TestAuthJWT_BearerToken(t *testing.T) {
	tokens := token.NewService("access", "refresh", 15*time.Minute, 24*time.Hour)
	user := testUser()

	access, err := tokens.IssueAccessToken(user)
	require.NoError(t, err)

	rec := doRequest(t, tokens, &staticUserRepo{user: user}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+access)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	tokens := token.NewService("access", "refresh", -time.Minute, 24*time.Hour)
	user := testUser()

	access, err := tokens.IssueAccessToken(user)
	require.NoError(t, err)

	verifier := token.NewService("access", "refresh", 15*time.Minute, 24*time.Hour)
	rec := doRequest(t, verifier, &staticUserRepo{user: user}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+access)
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid access token")
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	signer := token.NewService("other-secret", "refresh", 15*time.Minute, 24*time.Hour)
	verifier := token.NewService("access", "refresh", 15*time.Minute, 24*time.Hour)
	user := testUser()

	access, err := signer.IssueAccessToken(user)
	require.NoError(t, err)

	rec := doRequest(t, verifier, &staticUserRepo{user: user}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+access)
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// リフレッシュトークンをアクセストークンとして使えないこと
func TestAuthJWT_RefreshTokenRejected(t *testing.T) {
	tokens := token.NewService("access", "refresh", 15*time.Minute, 24*time.Hour)
	user := testUser()

	refresh, err := tokens.IssueRefreshToken(user)
	require.NoError(t, err)

	rec := doRequest(t, tokens, &staticUserRepo{user: user}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+refresh)
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// トークン発行後に削除されたユーザーは弾く
func TestAuthJWT_DeletedUser(t *testing.T) {
	tokens := token.NewService("access", "refresh", 15*time.Minute, 24*time.Hour)
	user := testUser()

	access, err := tokens.IssueAccessToken(user)
	require.NoError(t, err)

	rec := doRequest(t, tokens, &staticUserRepo{user: nil}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+access)
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MalformedBearer(t *testing.T) {
	tokens := token.NewService("access", "refresh", 15*time.Minute, 24*time.Hour)

	rec := doRequest(t, tokens, &staticUserRepo{}, func(req *http.Request) {
		req.Header.Set("Authorization", "Token abc.def.ghi")
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
