package token

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

func TestGenerateAndValidate(t *testing.T) {
	secret := "test-secret"
	userID, tenantID := uuid.New(), uuid.New()

	t.Run("Round Trip", func(t *testing.T) {
		tokenString, err := Generate(userID, tenantID, domain.RoleEditor, secret, time.Hour)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}

		claims, err := Validate(tokenString, secret)
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if claims.UserID != userID || claims.TenantID != tenantID {
			t.Error("claims do not match the generated identity")
		}
		if claims.Role != domain.RoleEditor {
			t.Errorf("expected role %s, got %s", domain.RoleEditor, claims.Role)
		}
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		tokenString, err := Generate(userID, tenantID, domain.RoleEditor, secret, time.Hour)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}

		if _, err := Validate(tokenString, "other-secret"); err == nil {
			t.Fatal("expected validation to fail with the wrong secret")
		}
	})

	t.Run("Expired Token", func(t *testing.T) {
		tokenString, err := Generate(userID, tenantID, domain.RoleEditor, secret, -time.Minute)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}

		if _, err := Validate(tokenString, secret); err == nil {
			t.Fatal("expected validation to fail for an expired token")
		}
	})

	t.Run("Garbage Token", func(t *testing.T) {
		if _, err := Validate("not.a.token", secret); err == nil {
			t.Fatal("expected validation to fail for a malformed token")
		}
	})
}
