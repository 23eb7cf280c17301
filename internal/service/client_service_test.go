package service

import (
	"context"
	"testing"
	"time"

	"fieldmate/internal/cache"
	dom "fieldmate/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	leader = dom.Actor{MemberID: 1, CompanyID: 10, Role: dom.RoleLeader}
	staff  = dom.Actor{MemberID: 2, CompanyID: 10, Role: dom.RoleStaff}
	other  = dom.Actor{MemberID: 3, CompanyID: 20, Role: dom.RoleLeader}
)

func newListCache(t *testing.T) *cache.ListCache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewListCache(rdb, time.Minute)
}

func TestClientListIsCachedAndInvalidated(t *testing.T) {
	repo := newFakeClients()
	rec := &recorder{}
	s := NewClientService(repo, newListCache(t), rec, zap.NewNop())
	ctx := context.Background()

	_, err := s.Create(ctx, staff, ClientInput{Name: "Acme", Phone: "02-555-1234"})
	require.NoError(t, err)

	list, err := s.List(ctx, staff, 10, dom.ClientQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	_, err = s.List(ctx, staff, 10, dom.ClientQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls())

	_, err = s.Create(ctx, staff, ClientInput{Name: "Beta", Phone: "02-555-9999"})
	require.NoError(t, err)
	list, err = s.List(ctx, staff, 10, dom.ClientQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, repo.listCalls())

	assert.Equal(t, []dom.EventKind{dom.EventClientCreated, dom.EventClientCreated}, rec.kinds())
}

func TestClientListNotPoisonedByConcurrentWrite(t *testing.T) {
	repo := newFakeClients()
	s := NewClientService(repo, newListCache(t), &recorder{}, zap.NewNop())
	ctx := context.Background()

	snapshot := make(chan struct{})
	release := make(chan struct{})
	repo.onceAfterList = func() {
		close(snapshot)
		<-release
	}

	done := make(chan []dom.Client)
	go func() {
		list, _ := s.List(ctx, staff, 10, dom.ClientQuery{})
		done <- list
	}()
	<-snapshot
	_, err := s.Create(ctx, staff, ClientInput{Name: "Acme", Phone: "02-555-1234"})
	require.NoError(t, err)
	close(release)
	assert.Empty(t, <-done)

	list, err := s.List(ctx, staff, 10, dom.ClientQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 2, repo.listCalls())
}

func TestClientListRules(t *testing.T) {
	s := NewClientService(newFakeClients(), nil, &recorder{}, zap.NewNop())
	ctx := context.Background()

	_, err := s.List(ctx, staff, 20, dom.ClientQuery{})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = s.List(ctx, staff, 10, dom.ClientQuery{Sort: "phone"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClientCreateValidation(t *testing.T) {
	s := NewClientService(newFakeClients(), nil, &recorder{}, zap.NewNop())
	ctx := context.Background()

	c, err := s.Create(ctx, staff, ClientInput{
		Name:     " Acme ",
		Phone:    "+82 10-1234-5678",
		SalesRep: dom.SalesRepresentative{Name: "Lee", Phone: "010 9876 5432", Department: "Sales"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, "821012345678", c.Phone)
	assert.Equal(t, "01098765432", c.SalesRep.Phone)
	assert.Equal(t, int64(10), c.CompanyID)

	_, err = s.Create(ctx, staff, ClientInput{Name: "", Phone: "0255512345"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = s.Create(ctx, staff, ClientInput{Name: "X", Phone: "123"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClientUpdateAndDelete(t *testing.T) {
	repo := newFakeClients(dom.Client{ID: 1, CompanyID: 10, Name: "Acme", Phone: "0255512345"})
	s := NewClientService(repo, nil, &recorder{}, zap.NewNop())
	ctx := context.Background()

	dept := "Field"
	c, err := s.Update(ctx, staff, 1, ClientPatch{SRDepartment: &dept})
	require.NoError(t, err)
	assert.Equal(t, "Field", c.SalesRep.Department)
	assert.Equal(t, "Acme", c.Name)

	_, err = s.Update(ctx, other, 1, ClientPatch{SRDepartment: &dept})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, staff, 1), ErrForbidden)
	assert.ErrorIs(t, s.Delete(ctx, other, 1), ErrNotFound)
	require.NoError(t, s.Delete(ctx, leader, 1))
	_, err = s.Get(ctx, leader, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
