package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"momento/internal/apperr"
)

func TestIssueParseRoundtrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Minute)
	userID := uuid.New()

	token, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	got, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got != userID {
		t.Errorf("parsed subject = %s, want %s", got, userID)
	}
}

func TestParseWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Minute).Issue(uuid.New())
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewTokenService("secret-b", time.Minute).Parse(token)
	if !apperr.IsKind(err, apperr.KindAuth) {
		t.Errorf("err = %v, want auth kind for wrong secret", err)
	}
}

func TestParseExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)
	token, err := svc.Issue(uuid.New())
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Parse(token)
	if !apperr.IsKind(err, apperr.KindAuth) {
		t.Errorf("err = %v, want auth kind for expired token", err)
	}
}

func TestParseGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Minute)
	if _, err := svc.Parse("not.a.token"); !apperr.IsKind(err, apperr.KindAuth) {
		t.Errorf("err = %v, want auth kind for malformed token", err)
	}
}

func TestPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword("correct horse battery", hash) {
		t.Error("VerifyPassword rejected the original password")
	}
	if VerifyPassword("wrong password", hash) {
		t.Error("VerifyPassword accepted a wrong password")
	}
}
