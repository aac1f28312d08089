package utils

import (
	"testing"

	"github.com/google/uuid"
)

const testSecret = "test-secret"

func TestTokenRoundtrip(t *testing.T) {
	id := uuid.New()
	token, err := CreateToken(testSecret, id, "Davi Zaia", "davi@example.com")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	claims, err := ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Email != "davi@example.com" || claims.Name != "Davi Zaia" {
		t.Fatalf("wrong claims: %+v", claims)
	}
	if claims.Subject != id.String() {
		t.Fatalf("wrong subject: %s", claims.Subject)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := CreateToken(testSecret, uuid.New(), "Davi Zaia", "davi@example.com")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	if _, err := ValidateToken("another-secret", token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken(testSecret, "not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
