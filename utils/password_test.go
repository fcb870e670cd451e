package utils

import "testing"

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
	if CheckPassword("", "anything") {
		t.Error("empty hash accepted")
	}
}

func TestHashPasswordRejectsOversized(t *testing.T) {
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := HashPassword(string(long)); err == nil {
		t.Error("password beyond the bcrypt limit accepted")
	}
}

func TestSanitizeStripsScript(t *testing.T) {
	got := Sanitize(`studying calculus <script>alert(1)</script> chapter 3`)
	if got == "" {
		t.Fatal("sanitizer removed everything")
	}
	for _, bad := range []string{"<script>", "alert(1)"} {
		if contains(got, bad) {
			t.Errorf("sanitized output still contains %q: %s", bad, got)
		}
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
