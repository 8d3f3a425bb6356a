package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestInitJWTSecretRequiredOutsideDevelopment(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "")

	if err := InitJWTSecret(); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset")
	}
}

func TestInitJWTSecretDevelopmentFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "development")

	if err := InitJWTSecret(); err != nil {
		t.Fatalf("expected dev fallback, got %v", err)
	}
}

func TestGenerateAndVerifyRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	if err := InitJWTSecret(); err != nil {
		t.Fatalf("init: %v", err)
	}

	tokenString, err := GenerateJWT(42, "9000000001", true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	token, err := VerifyJWT(tokenString)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if id, _ := claims["member_id"].(float64); uint(id) != 42 {
		t.Fatalf("member_id claim: %v", claims["member_id"])
	}
	if phone, _ := claims["phone"].(string); phone != "9000000001" {
		t.Fatalf("phone claim: %v", claims["phone"])
	}
	if isAdmin, _ := claims["is_admin"].(bool); !isAdmin {
		t.Fatalf("is_admin claim: %v", claims["is_admin"])
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	if err := InitJWTSecret(); err != nil {
		t.Fatalf("init: %v", err)
	}

	tokenString, err := GenerateJWT(1, "9000000001", false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := VerifyJWT(tokenString + "x"); err == nil {
		t.Fatal("expected tampered token to fail verification")
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	if err := InitJWTSecret(); err != nil {
		t.Fatalf("init: %v", err)
	}

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"member_id": 1})
	tokenString, err := foreign.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := VerifyJWT(tokenString); err == nil {
		t.Fatal("expected foreign signature to fail verification")
	}
}
