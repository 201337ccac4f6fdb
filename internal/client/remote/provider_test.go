package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityProvider_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/identity/login", r.URL.Path)
		var req credentialsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "alice", req.Username)
		require.Equal(t, "secret", req.Password)
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	defer srv.Close()

	p, err := NewIdentityProvider(srv.URL)
	require.NoError(t, err)

	token, err := p.Login(context.Background(), "alice", []byte("secret"))
	require.NoError(t, err)
	require.Equal(t, "tok-123", token)
}

func TestIdentityProvider_LoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid login/password"})
	}))
	defer srv.Close()

	p, err := NewIdentityProvider(srv.URL)
	require.NoError(t, err)

	_, err = p.Login(context.Background(), "alice", []byte("wrong"))
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestIdentityProvider_Register(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/identity/register", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	p, err := NewIdentityProvider(srv.URL)
	require.NoError(t, err)
	require.NoError(t, p.Register(context.Background(), "alice", []byte("secret")))
}

func TestIdentityProvider_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p, err := NewIdentityProvider(url)
	require.NoError(t, err)
	_, err = p.Login(context.Background(), "a", []byte("b"))
	require.ErrorIs(t, err, ErrUnavailable)
}
