package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "token"))
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestTokenRoundTrip(t *testing.T) {
	s := tempStore(t)

	if _, err := s.Token(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}

	want := signedToken(t, time.Now().Add(time.Hour))
	if err := s.Set(want); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if got != want {
		t.Fatalf("expected stored token back, got %q", got)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := s.Token(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken after clear, got %v", err)
	}
}

func TestExpiredTokenTreatedAsAbsent(t *testing.T) {
	s := tempStore(t)
	if err := s.Set(signedToken(t, time.Now().Add(-time.Minute))); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := s.Token(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken for expired token, got %v", err)
	}
}

func TestOpaqueTokenPassedThrough(t *testing.T) {
	s := tempStore(t)
	if err := s.Set("not-a-jwt"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Token()
	if err != nil || got != "not-a-jwt" {
		t.Fatalf("expected opaque token back, got %q (err=%v)", got, err)
	}
}

func TestInvalidateFiresOnce(t *testing.T) {
	s := tempStore(t)
	fired := 0
	s.SetInvalidateHandler(func() { fired++ })

	// Nothing held yet: no trigger.
	s.Invalidate()
	if fired != 0 {
		t.Fatalf("expected no trigger without a token, got %d", fired)
	}

	if err := s.Set(signedToken(t, time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Invalidate()
	s.Invalidate() // second 401 for the same dead session
	if fired != 1 {
		t.Fatalf("expected exactly one trigger, got %d", fired)
	}
	if _, err := s.Token(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected token cleared, got %v", err)
	}
}

func TestSetRejectsEmpty(t *testing.T) {
	s := tempStore(t)
	if err := s.Set("  "); err == nil {
		t.Fatalf("expected error for empty token")
	}
}
