package auth

import (
	"testing"
	"time"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Sign(42, models.Teacher)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := m.Parse(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 || claims.Role != models.Teacher {
		t.Fatalf("claims не совпали: %+v", claims)
	}
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)
	token, err := m.Sign(1, models.Student)
	if err != nil {
		t.Fatal(err)
	}
	_, err = m.Parse(token)
	if k, ok := apperr.KindOf(err); !ok || k != apperr.KindUnauthorized {
		t.Fatalf("ожидали unauthorized, получили %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Sign(1, models.Director)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenManager("secret-b", time.Hour).Parse(token); err == nil {
		t.Fatal("токен с чужой подписью не должен проходить")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatal("верный пароль не прошёл")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("неверный пароль прошёл")
	}
}
