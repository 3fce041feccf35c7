package paypal

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOAuthTokenSupplier_FetchesAndReusesToken(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		require.Equal(t, "/v1/oauth2/token", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "client", user)
		require.Equal(t, "secret", pass)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"A21AA","token_type":"Bearer","expires_in":32400}`)
	}))
	defer srv.Close()

	s := NewOAuthTokenSupplier(Config{BaseURL: srv.URL, ClientID: "client", ClientSecret: "secret", Timeout: 5 * time.Second})

	for i := 0; i < 3; i++ {
		tok, err := s.Token(context.Background())
		require.NoError(t, err)
		require.Equal(t, "A21AA", tok)
	}
	require.Equal(t, int32(1), hits.Load())
}

func TestOAuthTokenSupplier_InvalidClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"invalid_client","error_description":"Client Authentication failed"}`)
	}))
	defer srv.Close()

	s := NewOAuthTokenSupplier(Config{BaseURL: srv.URL, ClientID: "bad", ClientSecret: "bad", Timeout: 5 * time.Second})
	_, err := s.Token(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "invalid_client", apiErr.Name)
	require.Contains(t, apiErr.Error(), "Client Authentication failed")
}

func TestOAuthTokenSupplier_CanceledContext(t *testing.T) {
	s := NewOAuthTokenSupplier(Config{BaseURL: "http://127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Token(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
