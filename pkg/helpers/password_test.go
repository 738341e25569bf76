package helpers

import (
	"strings"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("supersecret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "supersecret" {
		t.Fatal("hash equals plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("not a bcrypt hash: %q", hash)
	}
	if !CompareHashAndPassword(hash, "supersecret") {
		t.Error("hash does not verify against the original password")
	}
	if CompareHashAndPassword(hash, "wrongpass") {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := HashPassword("supersecret")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("supersecret")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}

func TestCompareHashAndPasswordGarbage(t *testing.T) {
	if CompareHashAndPassword("not-a-hash", "supersecret") {
		t.Error("garbage hash verified")
	}
}
