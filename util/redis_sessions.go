package util

import (
	"context"
	"fmt"
	"time"

	"github.com/ariebrainware/healthsync-rx/config"
	"github.com/redis/go-redis/v9"
)

// SessionKey is the Redis key caching a live session.
func SessionKey(tokenID string) string {
	return fmt.Sprintf("session:%s", tokenID)
}

func userSetKey(userID uint) string {
	return fmt.Sprintf("user_sessions:%d", userID)
}

// SessionValue is the cached "<userID>:<role>" payload of a session key.
func SessionValue(userID uint, role string) string {
	return fmt.Sprintf("%d:%s", userID, role)
}

// CacheSession stores session:<tokenID> with the session's remaining lifetime and tracks the
// token in the per-user set. A nil Redis client is a no-op.
func CacheSession(ctx context.Context, userID uint, role, tokenID string, ttl time.Duration) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	if err := rdb.Set(ctx, SessionKey(tokenID), SessionValue(userID, role), ttl).Err(); err != nil {
		return err
	}
	return AddSessionToUserSet(ctx, userID, tokenID)
}

// LookupCachedSession returns the cached payload for tokenID. found is false on a cache miss
// or when Redis is not configured.
func LookupCachedSession(ctx context.Context, tokenID string) (value string, found bool, err error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return "", false, nil
	}
	value, err = rdb.Get(ctx, SessionKey(tokenID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// AddSessionToUserSet adds the session token to the per-user Redis set.
// The set has no TTL and persists until explicitly cleaned up via
// RemoveSessionTokenFromUserSet or InvalidateUserSessions.
func AddSessionToUserSet(ctx context.Context, userID uint, tokenID string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	key := userSetKey(userID)
	if err := rdb.SAdd(ctx, key, tokenID).Err(); err != nil {
		return err
	}
	return rdb.Persist(ctx, key).Err()
}

// removeFromSetScript removes a token and deletes the set once it is empty.
const removeFromSetScript = `
	local removed = redis.call('SREM', KEYS[1], ARGV[1])
	if removed > 0 then
		local count = redis.call('SCARD', KEYS[1])
		if count == 0 then
			redis.call('DEL', KEYS[1])
		end
	end
	return removed
`

// RemoveSessionTokenFromUserSet deletes session:<tokenID> and removes the token from the
// per-user set.
func RemoveSessionTokenFromUserSet(ctx context.Context, userID uint, tokenID string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	if err := rdb.Del(ctx, SessionKey(tokenID)).Err(); err != nil {
		return err
	}
	return rdb.Eval(ctx, removeFromSetScript, []string{userSetKey(userID)}, tokenID).Err()
}

// InvalidateUserSessions deletes every cached session of the user: the members of the per-user
// set plus any extra token ids known from the database. Best-effort; callers may ignore the error.
func InvalidateUserSessions(ctx context.Context, userID uint, knownTokenIDs ...string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	key := userSetKey(userID)
	members, err := rdb.SMembers(ctx, key).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	seen := make(map[string]struct{}, len(members)+len(knownTokenIDs))
	keys := make([]string, 0, len(members)+len(knownTokenIDs)+1)
	for _, tok := range append(members, knownTokenIDs...) {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		keys = append(keys, SessionKey(tok))
	}
	keys = append(keys, key)
	return rdb.Del(ctx, keys...).Err()
}
