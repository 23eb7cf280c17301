package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fieldmate/internal/auth"
	dom "fieldmate/internal/domain"
	"fieldmate/internal/dto"
	"fieldmate/internal/repo"
	"fieldmate/internal/response"
	"fieldmate/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMemberRepo struct {
	repo.MemberRepo
	members map[int64]dom.Member
}

func (f fakeMemberRepo) GetByID(_ context.Context, id int64) (dom.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return dom.Member{}, pgx.ErrNoRows
	}
	return m, nil
}

func newAuthServer(t *testing.T) (*gin.Engine, *auth.RefreshStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	members := fakeMemberRepo{members: map[int64]dom.Member{
		2: {ID: 2, CompanyID: 10, Name: "Park", LoginID: "park", Role: dom.RoleStaff},
	}}
	refresh := auth.NewRefreshStore(rdb, time.Hour)
	h := NewAuthHandler(service.NewMemberService(members, nopPublisher{}), auth.NewTokenManager(testSecret, time.Hour), refresh)

	r := gin.New()
	r.POST("/member/reissue", h.Reissue)
	r.POST("/member/logout", h.Logout)
	return r, refresh
}

func postRefresh(t *testing.T, r *gin.Engine, path, token string) (int, dto.TokenResponse) {
	t.Helper()
	body, err := json.Marshal(dto.RefreshRequest{RefreshToken: token})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env struct {
		response.Body
		Result dto.TokenResponse `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env.Result
}

func TestReissueRotatesRefreshToken(t *testing.T) {
	r, refresh := newAuthServer(t)
	first, err := refresh.Create(context.Background(), 2)
	require.NoError(t, err)

	code, tokens := postRefresh(t, r, "/member/reissue", first)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEqual(t, first, tokens.RefreshToken)
	assert.Equal(t, int64(2), tokens.Member.ID)
	assert.Equal(t, int64(3600), tokens.ExpiresIn)

	code, _ = postRefresh(t, r, "/member/reissue", first)
	assert.Equal(t, http.StatusUnauthorized, code, "a used refresh token is dead")

	code, _ = postRefresh(t, r, "/member/logout", tokens.RefreshToken)
	require.Equal(t, http.StatusOK, code)
	code, _ = postRefresh(t, r, "/member/reissue", tokens.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, code, "logout kills the refresh token")
}

func TestReissueForDeletedMember(t *testing.T) {
	r, refresh := newAuthServer(t)
	orphan, err := refresh.Create(context.Background(), 99)
	require.NoError(t, err)

	code, _ := postRefresh(t, r, "/member/reissue", orphan)
	assert.Equal(t, http.StatusUnauthorized, code)
}
