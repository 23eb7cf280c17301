package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fieldmate/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

var leader = domain.Member{ID: 11, CompanyID: 3, Role: domain.RoleLeader}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("0123456789abcdef", time.Hour)
	tok, err := m.Issue(leader)
	require.NoError(t, err)

	p, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, Principal{MemberID: 11, CompanyID: 3, Role: domain.RoleLeader}, p)
	assert.True(t, p.IsLeader())
}

func TestTokenExpiredAndForeignKey(t *testing.T) {
	m := NewTokenManager("0123456789abcdef", time.Minute)
	tok, err := m.Issue(leader)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenManager("fedcba9876543210", time.Minute)
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRefreshStoreConsumeOnce(t *testing.T) {
	mr, rdb := newRedis(t)
	s := NewRefreshStore(rdb, time.Hour)
	ctx := context.Background()

	tok, err := s.Create(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, tok, 64)
	assert.True(t, mr.Exists(refreshKeyPrefix+tok))

	id, err := s.Consume(ctx, tok)
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	_, err = s.Consume(ctx, tok)
	assert.ErrorIs(t, err, ErrRefreshNotFound)
}

func TestRefreshStoreExpiry(t *testing.T) {
	mr, rdb := newRedis(t)
	s := NewRefreshStore(rdb, time.Minute)
	ctx := context.Background()

	tok, err := s.Create(ctx, 7)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)

	_, err = s.Consume(ctx, tok)
	assert.ErrorIs(t, err, ErrRefreshNotFound)

	tok, err = s.Create(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, tok))
	_, err = s.Consume(ctx, tok)
	assert.ErrorIs(t, err, ErrRefreshNotFound)
}

func TestRequireMember(t *testing.T) {
	m := NewTokenManager("0123456789abcdef", time.Hour)
	staffTok, err := m.Issue(domain.Member{ID: 5, CompanyID: 3, Role: domain.RoleStaff})
	require.NoError(t, err)
	leaderTok, err := m.Issue(leader)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", RequireMember(m), func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.String(http.StatusOK, RateLimitKey(c)+"/"+string(p.Role))
	})
	r.DELETE("/admin", RequireMember(m), RequireLeader(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func(method, path, header string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/me", "Bearer garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/me", "Basic "+staffTok).Code)

	w := do(http.MethodGet, "/me", "Bearer "+staffTok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "member:5/STAFF", w.Body.String())

	w = do(http.MethodGet, "/me?access_token="+staffTok, "")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusForbidden, do(http.MethodDelete, "/admin", "Bearer "+staffTok).Code)
	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/admin", "bearer "+leaderTok).Code)
}
