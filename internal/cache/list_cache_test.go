package cache

import (
	"context"
	"testing"
	"time"

	dom "fieldmate/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *ListCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewListCache(rdb, ttl)
}

func TestClientsMissThenHit(t *testing.T) {
	_, c := newCache(t, time.Minute)
	ctx := context.Background()
	q := dom.ClientQuery{Name: " Acme ", Sort: dom.ClientSortName}

	list, err := c.GetClients(ctx, 1, 0, q)
	require.NoError(t, err)
	assert.Nil(t, list)

	want := []dom.Client{{ID: 5, CompanyID: 1, Name: "Acme", SalesRep: dom.SalesRepresentative{Name: "Lee"}}}
	require.NoError(t, c.SetClients(ctx, 1, 0, q, want))

	// Query normalization: case and surrounding spaces do not matter.
	got, err := c.GetClients(ctx, 1, 0, dom.ClientQuery{Name: "acme", Sort: dom.ClientSortName})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Lee", got[0].SalesRep.Name)

	got, err = c.GetClients(ctx, 1, 0, dom.ClientQuery{Name: "acme"})
	require.NoError(t, err)
	assert.Nil(t, got, "different sort is a different key")
}

func TestEmptyListIsAHit(t *testing.T) {
	_, c := newCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetCategories(ctx, 2, 0, []dom.Category{}))
	got, err := c.GetCategories(ctx, 2, 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestInvalidateClientsBumpsOnlyThatCompany(t *testing.T) {
	_, c := newCache(t, time.Minute)
	ctx := context.Background()

	v1, err := c.ClientsVersion(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v1)
	require.NoError(t, c.SetClients(ctx, 1, v1, dom.ClientQuery{}, []dom.Client{{ID: 1}}))
	require.NoError(t, c.SetClients(ctx, 12, 0, dom.ClientQuery{}, []dom.Client{{ID: 3}}))

	require.NoError(t, c.InvalidateClients(ctx, 1))
	v2, err := c.ClientsVersion(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v2)

	got, err := c.GetClients(ctx, 1, v2, dom.ClientQuery{})
	require.NoError(t, err)
	assert.Nil(t, got)

	v12, err := c.ClientsVersion(ctx, 12)
	require.NoError(t, err)
	got, err = c.GetClients(ctx, 12, v12, dom.ClientQuery{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLateWriteLandsUnderRetiredVersion(t *testing.T) {
	_, c := newCache(t, time.Minute)
	ctx := context.Background()

	ver, err := c.CategoriesVersion(ctx, 4)
	require.NoError(t, err)
	require.NoError(t, c.InvalidateCategories(ctx, 4))
	// A fetch that read the version before the write stores its result late.
	require.NoError(t, c.SetCategories(ctx, 4, ver, []dom.Category{{ID: 1, Name: "Old"}}))

	cur, err := c.CategoriesVersion(ctx, 4)
	require.NoError(t, err)
	got, err := c.GetCategories(ctx, 4, cur)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCategoriesExpire(t *testing.T) {
	mr, c := newCache(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.SetCategories(ctx, 4, 0, []dom.Category{{ID: 1, Name: "Visit", Color: "#112233"}}))
	mr.FastForward(time.Minute)

	got, err := c.GetCategories(ctx, 4, 0)
	require.NoError(t, err)
	assert.Nil(t, got)
}
