package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-not-for-production")

	token, err := GenerateToken(42, "nightowl", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "nightowl" {
		t.Errorf("claims = (%d, %q), want (42, nightowl)", claims.UserID, claims.Username)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-not-for-production")

	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-not-for-production")

	token, err := GenerateToken(7, "latecomer", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken(token); err == nil {
		t.Error("expired token accepted")
	}
}
