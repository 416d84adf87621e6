// Package session holds the bearer credential for the signed-in user.
//
// The token is a single string kept in a file; it is written by the sign-in
// and sign-up flows, cleared by sign-out or any 401 response, and read fresh
// on every call so that invalidation by one component is seen by all others.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken means no usable credential is present; the caller must prompt
// for sign-in instead of issuing an anonymous call.
var ErrNoToken = errors.New("no session token")

// Store is the process-wide credential holder.
type Store struct {
	mu           sync.Mutex
	path         string
	onInvalidate func()
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// SetInvalidateHandler registers the redirect trigger fired when a held
// token is invalidated by a 401. It fires at most once per held token.
func (s *Store) SetInvalidateHandler(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInvalidate = fn
}

// Token returns the current credential. Components must call this at the
// time of each request rather than caching the value, since another
// component's 401 handling can invalidate it concurrently.
func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.read()
	if err != nil {
		return "", err
	}
	if expired(tok) {
		_ = os.Remove(s.path)
		return "", ErrNoToken
	}
	return tok, nil
}

// Set stores a fresh credential after a successful sign-in or sign-up.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("refusing to store empty token")
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write session token: %w", err)
	}
	return nil
}

// Clear removes the credential (sign-out). Clearing an absent token is not
// an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove()
}

// Invalidate clears the credential in response to a 401 and fires the
// registered handler, but only if a token was actually held. A second 401
// arriving for the same dead session finds nothing to clear and stays
// silent, so the redirect trigger fires once.
func (s *Store) Invalidate() {
	s.mu.Lock()
	tok, err := s.read()
	if err != nil || tok == "" {
		s.mu.Unlock()
		return
	}
	_ = s.remove()
	fn := s.onInvalidate
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (s *Store) read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("read session token: %w", err)
	}
	tok := strings.TrimSpace(string(data))
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

func (s *Store) remove() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// expired inspects the token's exp claim without verifying the signature;
// the client has no signing key and only wants to avoid sending a call that
// is guaranteed to come back 401. Tokens that are not JWTs are passed along
// opaquely and left for the server to judge.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
