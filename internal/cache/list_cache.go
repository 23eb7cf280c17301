package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	dom "fieldmate/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyClients    = "clients:"
	keyCategories = "categories:"
)

// ListCache caches per-company client and category lists in Redis.
type ListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewListCache(rdb *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{rdb: rdb, ttl: ttl}
}

// Lists live under a per-company version. Invalidation bumps the version and
// old keys expire with the TTL.

// ClientsVersion returns the current client list version of the company.
func (c *ListCache) ClientsVersion(ctx context.Context, companyID int64) (int64, error) {
	return c.version(ctx, clientVersionKey(companyID))
}

// GetClients returns the cached list for the query, or nil on a miss.
func (c *ListCache) GetClients(ctx context.Context, companyID, ver int64, q dom.ClientQuery) ([]dom.Client, error) {
	var list []dom.Client
	if err := c.get(ctx, clientKey(companyID, ver, q), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *ListCache) SetClients(ctx context.Context, companyID, ver int64, q dom.ClientQuery, list []dom.Client) error {
	return c.set(ctx, clientKey(companyID, ver, q), list)
}

// InvalidateClients retires every cached client query of the company.
func (c *ListCache) InvalidateClients(ctx context.Context, companyID int64) error {
	return c.rdb.Incr(ctx, clientVersionKey(companyID)).Err()
}

func (c *ListCache) CategoriesVersion(ctx context.Context, companyID int64) (int64, error) {
	return c.version(ctx, categoryVersionKey(companyID))
}

func (c *ListCache) GetCategories(ctx context.Context, companyID, ver int64) ([]dom.Category, error) {
	var list []dom.Category
	if err := c.get(ctx, categoryKey(companyID, ver), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *ListCache) SetCategories(ctx context.Context, companyID, ver int64, list []dom.Category) error {
	return c.set(ctx, categoryKey(companyID, ver), list)
}

func (c *ListCache) InvalidateCategories(ctx context.Context, companyID int64) error {
	return c.rdb.Incr(ctx, categoryVersionKey(companyID)).Err()
}

// version is 0 until the first invalidation.
func (c *ListCache) version(ctx context.Context, key string) (int64, error) {
	v, err := c.rdb.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

// get leaves dst untouched on a miss.
func (c *ListCache) get(ctx context.Context, key string, dst any) error {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

func (c *ListCache) set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func clientVersionKey(companyID int64) string {
	return keyClients + "ver:" + strconv.FormatInt(companyID, 10)
}

func clientKey(companyID, ver int64, q dom.ClientQuery) string {
	sort := q.Sort
	if sort == "" {
		sort = dom.ClientSortCreatedAt
	}
	return keyClients + strconv.FormatInt(companyID, 10) + ":v" + strconv.FormatInt(ver, 10) +
		":" + string(sort) + ":" + normalizeQuery(q.Name)
}

func categoryVersionKey(companyID int64) string {
	return keyCategories + "ver:" + strconv.FormatInt(companyID, 10)
}

func categoryKey(companyID, ver int64) string {
	return keyCategories + strconv.FormatInt(companyID, 10) + ":v" + strconv.FormatInt(ver, 10)
}

func normalizeQuery(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
