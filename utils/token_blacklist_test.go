package utils

import (
	"testing"
	"time"
)

func TestBlacklistSurvivesWithoutRedis(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-not-for-production")

	token := "revoked-token-" + time.Now().Format("150405.000000000")
	BlacklistToken(token, time.Now().Add(time.Hour))

	// No Redis server runs in tests; the local record alone must reject the
	// token after logout.
	if !IsTokenBlacklisted(token) {
		t.Error("token revoked on this instance was accepted")
	}
	if IsTokenBlacklisted(token + "-other") {
		t.Error("never-revoked token reported as blacklisted")
	}
}

func TestBlacklistExpiredEntryReleased(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-not-for-production")

	token := "expired-token-" + time.Now().Format("150405.000000000")
	BlacklistToken(token, time.Now().Add(-time.Minute))
	if IsTokenBlacklisted(token) {
		t.Error("already-expired token kept in the blacklist")
	}
}
