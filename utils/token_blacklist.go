package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// blacklistEntry keeps expiration metadata for a JWT token.
type blacklistEntry struct {
	expiresAt time.Time
}

var (
	blacklist   = map[string]blacklistEntry{}
	blacklistMu sync.RWMutex
)

// blacklistKey hashes the token so raw JWTs are never stored in Redis.
func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "jwt:blacklist:" + hex.EncodeToString(sum[:])
}

// BlacklistToken revokes a token until its natural expiration. The revocation
// is always recorded in process memory and replicated to Redis for other
// instances, so a Redis outage cannot un-revoke a token on the instance that
// handled the logout.
func BlacklistToken(token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}

	blacklistMu.Lock()
	blacklist[token] = blacklistEntry{expiresAt: expiresAt}
	blacklistMu.Unlock()

	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, blacklistKey(token), "1", ttl).Err(); err != nil && Sugar != nil {
			Sugar.Warnf("token blacklist replication to redis failed: %v", err)
		}
	}
}

// IsTokenBlacklisted checks if a token was revoked before natural expiration.
// The local map answers for tokens revoked on this instance; Redis covers
// revocations made elsewhere. A Redis failure is logged and only the local
// answer stands.
func IsTokenBlacklisted(token string) bool {
	blacklistMu.RLock()
	entry, ok := blacklist[token]
	blacklistMu.RUnlock()
	if ok {
		if time.Now().Before(entry.expiresAt) {
			return true
		}
		blacklistMu.Lock()
		delete(blacklist, token)
		blacklistMu.Unlock()
	}

	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		n, err := rc.Exists(ctx, blacklistKey(token)).Result()
		if err != nil {
			if Sugar != nil {
				Sugar.Warnf("token blacklist check against redis failed: %v", err)
			}
			return false
		}
		return n > 0
	}
	return false
}
