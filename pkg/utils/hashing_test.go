package utils

import "testing"

func TestHashAndComparePasswords(t *testing.T) {
	hash, err := HashPassword("senha123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "senha123" {
		t.Fatal("hash equals plaintext")
	}

	if err := ComparePasswords(hash, "senha123"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := ComparePasswords(hash, "errada"); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}
	if len(a) != 64 { // 32 bytes hex-encoded
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}

	b, _ := GenerateSecureToken(32)
	if a == b {
		t.Fatal("two tokens should not collide")
	}

	if _, err := GenerateSecureToken(0); err == nil {
		t.Fatal("expected error for non-positive length")
	}
}
