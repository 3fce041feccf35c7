package paypal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/toomate/cashier/pkg/logctx"
)

type staticToken struct {
	token string
	err   error
}

func (s staticToken) Token(context.Context) (string, error) { return s.token, s.err }

func newTestClient(t *testing.T, h http.HandlerFunc, tokens TokenSupplier) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second, BreakerFailures: 2, BreakerTimeout: time.Minute}, tokens, zap.NewNop().Sugar())
}

func TestReviseSubscription_SendsAuthorizedJSON(t *testing.T) {
	var gotBody map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/billing/subscriptions/I-SUB123/revise", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "cashier-req-1-revise", r.Header.Get("PayPal-Request-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"plan_id":"P-PRO-6","plan_overridden":false}`)
	}, staticToken{token: "tok-1"})

	ctx := WithRequestID(logctx.WithTraceID(context.Background(), "trace-9"), "cashier-req-1-revise")
	res, err := c.ReviseSubscription(ctx, "I-SUB123", "P-PRO-6")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"plan_id": "P-PRO-6"}, gotBody)
	require.JSONEq(t, `{"plan_id":"P-PRO-6","plan_overridden":false}`, string(res))
}

func TestCall_TraceIDIsNotAnIdempotencyKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Values("PayPal-Request-Id"))
		w.WriteHeader(http.StatusNoContent)
	}, staticToken{token: "tok"})

	ctx := logctx.WithTraceID(context.Background(), "client-supplied-id")
	_, err := c.ActivateSubscription(ctx, "I-SUB", "r")
	require.NoError(t, err)
}

func TestReviseSubscription_LargeSuccessBody(t *testing.T) {
	links := make([]map[string]string, 0, 1200)
	for i := 0; i < 1200; i++ {
		links = append(links, map[string]string{
			"href":   fmt.Sprintf("https://api.paypal.com/v1/billing/subscriptions/I-SUB/links/%04d", i),
			"rel":    "edit",
			"method": "PATCH",
		})
	}
	payload, err := json.Marshal(map[string]any{"plan_id": "P-PRO-6", "links": links})
	require.NoError(t, err)
	require.Greater(t, len(payload), maxErrorBody)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	}, staticToken{token: "tok"})

	res, err := c.ReviseSubscription(context.Background(), "I-SUB", "P-PRO-6")
	require.NoError(t, err)
	require.JSONEq(t, string(payload), string(res))
}

func TestCall_LargeErrorBodyStillParsed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"name":"INVALID_REQUEST","message":"bad"}`)
		_, _ = io.WriteString(w, strings.Repeat(" ", maxErrorBody))
	}, staticToken{token: "tok"})

	_, err := c.ReviseSubscription(context.Background(), "I-SUB", "P-1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_REQUEST", apiErr.Name)
}

func TestActivateSubscription_NoContentBecomesEmptyObject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/billing/subscriptions/I-SUB123/activate", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Reactivating", body["reason"])
		w.WriteHeader(http.StatusNoContent)
	}, staticToken{token: "tok"})

	res, err := c.ActivateSubscription(context.Background(), "I-SUB123", "Reactivating")
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(res))
}

func TestCall_UpstreamErrorCarriesMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"name":"UNPROCESSABLE_ENTITY","message":"The requested action could not be performed.","debug_id":"abc123"}`)
	}, staticToken{token: "tok"})

	_, err := c.ActivateSubscription(context.Background(), "I-SUB", "r")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	require.Equal(t, "UNPROCESSABLE_ENTITY", apiErr.Name)
	require.Equal(t, "abc123", apiErr.DebugID)
	require.Equal(t, "Error with PayPal API: Request failed with status code 422: UNPROCESSABLE_ENTITY: The requested action could not be performed.", err.Error())
}

func TestCall_TokenFailureSkipsRequest(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}, staticToken{err: errors.New("token service down")})

	_, err := c.Call(context.Background(), http.MethodGet, "/v1/ping", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, err.Error(), "token service down")
	require.Zero(t, hits.Load())
}

func TestCall_BreakerOpensOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, staticToken{token: "tok"})

	for i := 0; i < 2; i++ {
		_, err := c.ReviseSubscription(context.Background(), "I-SUB", "P-1")
		require.Error(t, err)
	}
	_, err := c.ReviseSubscription(context.Background(), "I-SUB", "P-1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "circuit breaker is open")
	require.Equal(t, int32(2), hits.Load())
}

func TestCall_ClientErrorsDoNotOpenBreaker(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"name":"RESOURCE_NOT_FOUND","message":"not found"}`)
	}, staticToken{token: "tok"})

	for i := 0; i < 4; i++ {
		_, err := c.ReviseSubscription(context.Background(), "I-SUB", "P-1")
		require.Error(t, err)
	}
	require.Equal(t, int32(4), hits.Load())
}

func TestSubscriptionPath_EscapesID(t *testing.T) {
	require.Equal(t, "/v1/billing/subscriptions/I-1%2F..%2Fx/revise", subscriptionPath("I-1/../x", "revise"))
}
