// Package client holds the outbound HTTP adapter and the credential store.
// It is the only package that talks to the REST backend directly; every
// other layer goes through it and receives normalized *common.Error values.
package client

import (
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"pannel_backoffice/internal/models"
)

// TokenStore keeps the access token for one operator session. All methods
// are safe for concurrent use.
type TokenStore struct {
	mu     sync.RWMutex
	access string
}

// NewTokenStore returns an empty store. A store with no token represents an
// unauthenticated session.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Set replaces the stored access token.
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = token
}

// Token returns the current access token, empty when unauthenticated.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// Remove clears the stored token.
func (s *TokenStore) Remove() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
}

// HasToken reports whether a token is present.
func (s *TokenStore) HasToken() bool {
	return s.Token() != ""
}

// Role extracts the role claim from the stored token without verifying the
// signature. The backend re-checks authorization on every request, so the
// claim is only used to hide controls the caller could not use anyway.
// Any decode failure yields an empty role, which grants nothing.
func (s *TokenStore) Role() string {
	token := s.Token()
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

// IsAdmin reports whether the stored token carries the admin role.
func (s *TokenStore) IsAdmin() bool {
	return s.Role() == models.RoleAdmin
}
