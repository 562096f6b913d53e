package crypto

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func matches(t *testing.T, hash, plain string) bool {
	t.Helper()
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(plain)) == nil
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "password123" {
		t.Fatal("hash must not equal the plain password")
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("expected bcrypt hash prefix, got %q", hash[:4])
	}
	if !matches(t, hash, "password123") {
		t.Error("hash should match the original password")
	}
	if matches(t, hash, "password456") {
		t.Error("hash should not match a different password")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	first, _ := HashPassword("same")
	second, _ := HashPassword("same")
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

func TestHashPassword_LongPasswords(t *testing.T) {
	for _, n := range []int{72, 73, 4096} {
		if _, err := HashPassword(strings.Repeat("x", n)); err != nil {
			t.Errorf("HashPassword(%d bytes) returned error: %v", n, err)
		}
	}

	base := strings.Repeat("x", 72)
	hash, err := HashPassword(base + "a")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if matches(t, hash, base+"b") {
		t.Error("passwords differing after byte 72 must not collide")
	}
}

func TestPrehash_FitsBcrypt(t *testing.T) {
	if got := len(prehash(strings.Repeat("ü", 100))); got > 72 {
		t.Errorf("prehash length = %d, want at most 72", got)
	}
}
