package webserver

import (
	"testing"

	"github.com/servimart/servimart/internal/domain"
)

func TestIssueAndParseToken(t *testing.T) {
	u := &domain.User{ID: 42, Username: "alice", Role: domain.RoleUser}

	tokenString, err := IssueToken("test-secret", u)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := ParseToken("test-secret", tokenString)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "alice" || claims.Role != domain.RoleUser {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Error("token must carry a future expiry")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	u := &domain.User{ID: 7, Username: "bob", Role: domain.RoleAdmin}

	tokenString, err := IssueToken("secret-a", u)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := ParseToken("secret-b", tokenString); err == nil {
		t.Fatal("expected verification failure with the wrong secret")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("test-secret", "not.a.token"); err == nil {
		t.Fatal("expected parse failure")
	}
}
