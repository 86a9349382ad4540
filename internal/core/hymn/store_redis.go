package hymn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/hinario/internal/platform/constants"
)

// RedisListCache implements ListCache on top of Redis.
//
// The full listing is stored as a single JSON blob: the catalog stays small
// (hundreds of entries) and every picker needs all of it anyway.
type RedisListCache struct {
	client *redis.Client
}

// NewRedisListCache creates a new Redis-backed ListCache.
func NewRedisListCache(client *redis.Client) *RedisListCache {
	return &RedisListCache{client: client}
}

/*
Get retrieves the cached hymn listing.

Description: A missing key is a miss, not an error. Corrupt payloads are
treated as a miss as well so a bad write can never wedge the listing.

Returns:
  - []PublicHymn: The cached listing (nil on miss)
  - bool: Whether the cache was hit
  - error: Connectivity errors only
*/
func (cache *RedisListCache) Get(context context.Context) ([]PublicHymn, bool, error) {

	payload, err := cache.client.Get(context, constants.RedisKeyPublicHymnList).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_hymn_list_get_failed: %w", err)
	}

	var hymns []PublicHymn
	if err := json.Unmarshal(payload, &hymns); err != nil {
		// Corrupt entry: drop it and fall back to the database.
		_ = cache.client.Del(context, constants.RedisKeyPublicHymnList).Err()
		return nil, false, nil
	}

	return hymns, true, nil
}

/*
Set stores the hymn listing with the standard TTL.

Returns:
  - error: Marshalling or connectivity errors
*/
func (cache *RedisListCache) Set(context context.Context, hymns []PublicHymn) error {

	payload, err := json.Marshal(hymns)
	if err != nil {
		return fmt.Errorf("redis_hymn_list_marshal_failed: %w", err)
	}

	if err := cache.client.Set(context, constants.RedisKeyPublicHymnList, payload, constants.PublicHymnListTTL).Err(); err != nil {
		return fmt.Errorf("redis_hymn_list_set_failed: %w", err)
	}

	return nil
}

/*
Invalidate removes the cached listing. Called after every successful creation
so the next listing includes the new hymn immediately.

Returns:
  - error: Connectivity errors
*/
func (cache *RedisListCache) Invalidate(context context.Context) error {

	if err := cache.client.Del(context, constants.RedisKeyPublicHymnList).Err(); err != nil {
		return fmt.Errorf("redis_hymn_list_del_failed: %w", err)
	}

	return nil
}
