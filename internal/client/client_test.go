package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pannel_backoffice/internal/common"
)

func asAppError(t *testing.T, err error) *common.Error {
	t.Helper()
	appErr := common.AsError(err)
	require.NotNil(t, appErr)
	return appErr
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	return c, srv
}

func TestBearerAttachedOutsideLogin(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":"1"}`))
	}))
	c.Tokens().Set("abc123")

	var out map[string]string
	require.NoError(t, c.Get(context.Background(), "/panel/panel", &out))
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.Equal(t, "1", out["id"])
}

func TestLoginGoesOutWithoutBearer(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"access":"tok"}`))
	}))

	var out map[string]string
	require.NoError(t, c.Post(context.Background(), LoginPath, map[string]string{"email": "a@b.c"}, &out))
	assert.Empty(t, gotAuth)
}

func TestMissingTokenShortCircuits(t *testing.T) {
	called := false
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	err := c.Get(context.Background(), "/panel/panel", nil)
	require.Error(t, err)
	assert.False(t, called, "no request should leave the process without a token")
}

func TestUnauthorizedClearsTokenAndNotifies(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Token expired"}`))
	}))
	c.Tokens().Set("stale")
	fired := false
	c.onUnauthorized = func() { fired = true }

	err := c.Get(context.Background(), "/panel/campaign", nil)
	require.Error(t, err)
	assert.True(t, fired)
	assert.False(t, c.Tokens().HasToken())
}

func TestLoginRejectionKeepsSessionState(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Identifiants invalides"}`))
	}))
	fired := false
	c.onUnauthorized = func() { fired = true }

	err := c.Post(context.Background(), LoginPath, map[string]string{}, nil)
	require.Error(t, err)
	assert.False(t, fired, "a rejected login must not trigger the session-expiry path")
}

func TestBackendDetailSurfacesVerbatim(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Ce panneau est déjà réservé"}`))
	}))
	c.Tokens().Set("tok")

	err := c.Post(context.Background(), "/panel/campaign", map[string]string{}, nil)
	require.Error(t, err)

	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, "Ce panneau est déjà réservé", appErr.Detail)
	assert.Equal(t, "Ce panneau est déjà réservé", appErr.Notification())
	assert.NotNil(t, appErr.ResponseData)
}

func TestDeleteSendsBody(t *testing.T) {
	var gotBody []byte
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = buf
		w.WriteHeader(http.StatusNoContent)
	}))
	c.Tokens().Set("tok")

	require.NoError(t, c.Delete(context.Background(), "/auth/user/delete/", map[string]string{
		"user_id": "9", "password": "pw",
	}))
	assert.Contains(t, string(gotBody), `"user_id":"9"`)
}

func TestRoleDecodedWithoutVerification(t *testing.T) {
	store := NewTokenStore()
	store.Set(signedToken(t, jwt.MapClaims{"role": "admin", "email": "x@y.z"}))
	assert.True(t, store.IsAdmin())
	assert.Equal(t, "admin", store.Role())

	store.Set(signedToken(t, jwt.MapClaims{"role": "report"}))
	assert.False(t, store.IsAdmin())
}

func TestRoleFailsClosed(t *testing.T) {
	store := NewTokenStore()

	// no token at all
	assert.False(t, store.IsAdmin())

	// structurally broken token
	store.Set("not-a-jwt")
	assert.False(t, store.IsAdmin())
	assert.Empty(t, store.Role())

	// valid token without a role claim
	store.Set(signedToken(t, jwt.MapClaims{"email": "x@y.z"}))
	assert.False(t, store.IsAdmin())
}
