package model_test

import (
	"testing"
	"time"

	"github.com/techBikashRepo/jobbee-api/internal/model"
)

func TestPasswordHashing(t *testing.T) {
	user := model.User{}
	if err := user.SetPassword("supersecret"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if user.Password == "supersecret" {
		t.Fatal("password stored in plaintext")
	}
	if !user.ComparePassword("supersecret") {
		t.Error("correct password rejected")
	}
	if user.ComparePassword("wrong") {
		t.Error("wrong password accepted")
	}
}

func TestGenerateResetToken(t *testing.T) {
	user := model.User{}
	raw, err := user.GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}

	if raw == "" {
		t.Fatal("raw token is empty")
	}
	if user.ResetPasswordToken == raw {
		t.Error("raw token stored unhashed")
	}
	if user.ResetPasswordToken != model.HashResetToken(raw) {
		t.Error("stored token does not match hash of raw token")
	}
	if user.ResetPasswordExpire == nil || !user.ResetPasswordExpire.After(time.Now()) {
		t.Error("expiry not set in the future")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{model.RoleUser, model.RoleEmployer, model.RoleAdmin} {
		if !model.ValidRole(role) {
			t.Errorf("ValidRole(%q) = false", role)
		}
	}
	if model.ValidRole("superuser") {
		t.Error("ValidRole(superuser) = true")
	}
}
