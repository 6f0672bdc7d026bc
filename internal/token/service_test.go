package token

import (
	"testing"
	"time"

	"vidtube/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *model.User {
	return &model.User{
		ID:       "3f1c2a90-0000-0000-0000-000000000001",
		Username: "alice",
		Email:    "a@x.com",
		FullName: "Alice",
	}
}

func newTestService() *Service {
	return NewService("access-secret", "refresh-secret", 15*time.Minute, 10*24*time.Hour)
}

// =====================
// アクセストークン
// =====================

func TestAccessToken_IssueAndVerify(t *testing.T) {
	svc := newTestService()
	user := testUser()

	raw, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := svc.VerifyAccess(raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestAccessToken_WrongSecretRejected(t *testing.T) {
	user := testUser()

	other := NewService("other-secret", "refresh-secret", 15*time.Minute, time.Hour)
	raw, err := other.IssueAccessToken(user)
	require.NoError(t, err)

	svc := newTestService()
	_, err = svc.VerifyAccess(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessToken_ExpiredRejected(t *testing.T) {
	user := testUser()

	//既に期限切れのトークンを発行
	svc := NewService("access-secret", "refresh-secret", -time.Minute, time.Hour)
	raw, err := svc.IssueAccessToken(user)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(raw)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestAccessToken_MalformedRejected(t *testing.T) {
	svc := newTestService()

	_, err := svc.VerifyAccess("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// リフレッシュ鍵で署名したトークンはアクセス側の検証を通らない
func TestAccessToken_RefreshTokenRejected(t *testing.T) {
	svc := newTestService()
	user := testUser()

	refresh, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// =====================
// リフレッシュトークン
// =====================

func TestRefreshToken_IssueAndVerify(t *testing.T) {
	svc := newTestService()
	user := testUser()

	raw, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	subject, err := svc.VerifyRefresh(raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)
}

// 署名を改ざんしたトークンは弾く
func TestRefreshToken_TamperedRejected(t *testing.T) {
	svc := newTestService()
	user := testUser()

	raw, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	tampered := raw[:len(raw)-2] + "xx"
	_, err = svc.VerifyRefresh(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// 同じユーザーでも発行のたびに異なるトークンになる（jti）
func TestRefreshToken_UniquePerIssue(t *testing.T) {
	svc := newTestService()
	user := testUser()

	first, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)
	second, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRefreshToken_ExpiredRejected(t *testing.T) {
	user := testUser()

	svc := NewService("access-secret", "refresh-secret", 15*time.Minute, -time.Minute)
	raw, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	_, err = svc.VerifyRefresh(raw)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
