package paypal

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenSupplier yields a bearer token for the billing API.
type TokenSupplier interface {
	Token(ctx context.Context) (string, error)
}

// OAuthTokenSupplier fetches client-credentials tokens from PayPal's
// /v1/oauth2/token endpoint and reuses them until they expire.
type OAuthTokenSupplier struct {
	src oauth2.TokenSource
}

func NewOAuthTokenSupplier(cfg Config) *OAuthTokenSupplier {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.BaseURL + "/v1/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	// The token source outlives any single request, so it gets its own
	// context carrying only the HTTP client.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: cfg.Timeout})
	return &OAuthTokenSupplier{src: cc.TokenSource(ctx)}
}

func (s *OAuthTokenSupplier) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tok, err := s.src.Token()
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			return "", newStatusError(re.Response.StatusCode, errorBody{Error: re.ErrorCode, ErrorDescription: re.ErrorDescription})
		}
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	return tok.AccessToken, nil
}
