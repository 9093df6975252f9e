package jwtutil_test

import (
	"testing"

	"github.com/techBikashRepo/jobbee-api/pkg/config"
	"github.com/techBikashRepo/jobbee-api/pkg/jwtutil"
)

func initJWT(t *testing.T, key string) {
	t.Helper()
	jwtutil.Initialize(&config.JWTConfig{SigningKey: key, ExpirationHours: 1})
}

func TestTokenRoundTrip(t *testing.T) {
	initJWT(t, "test-signing-key")

	token, err := jwtutil.GenerateToken("jane@example.com", 42, "employer")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := jwtutil.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Email != "jane@example.com" || claims.UserID != 42 || claims.Role != "employer" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateToken_WrongKey(t *testing.T) {
	initJWT(t, "key-one")
	token, err := jwtutil.GenerateToken("jane@example.com", 42, "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	initJWT(t, "key-two")
	if _, err := jwtutil.ValidateToken(token); err == nil {
		t.Error("token signed with a different key validated")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	initJWT(t, "test-signing-key")
	if _, err := jwtutil.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token validated")
	}
}
