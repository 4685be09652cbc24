package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewIssuer("test-secret")
	if err != nil {
		t.Fatal(err)
	}
	id := NewVisitorID()

	token, err := issuer.Issue(id)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	got, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got != id {
		t.Errorf("expected visitor id %q, got %q", id, got)
	}
}

func TestIssuer_RejectsBadTokens(t *testing.T) {
	issuer, _ := NewIssuer("test-secret")
	other, _ := NewIssuer("other-secret")
	good, _ := issuer.Issue(NewVisitorID())
	foreign, _ := other.Issue(NewVisitorID())

	notULID, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-ulid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))

	tests := []struct {
		name  string
		token string
	}{
		{name: "Garbage", token: "not a token"},
		{name: "Tampered", token: good[:len(good)-2] + "xx"},
		{name: "Other secret", token: foreign},
		{name: "Subject not a ULID", token: notULID},
		{name: "Unsigned", token: strings.Join(strings.Split(good, ".")[:2], ".") + "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.Parse(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestIssuer_Expired(t *testing.T) {
	issuer, _ := NewIssuer("test-secret")
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	token, err := issuer.Issue(NewVisitorID())
	if err != nil {
		t.Fatal(err)
	}

	issuer.now = func() time.Time { return issued.Add(TokenMaxAge + time.Hour) }
	if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected expired token to be rejected, got %v", err)
	}
}

func TestNewIssuer_EphemeralKey(t *testing.T) {
	a, err := NewIssuer("")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := NewIssuer("")

	token, _ := a.Issue(NewVisitorID())
	if _, err := b.Parse(token); err == nil {
		t.Error("expected tokens from one ephemeral key to fail under another")
	}
}
