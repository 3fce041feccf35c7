package paypal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// ReviseSubscription moves a subscription to planID.
// POST /v1/billing/subscriptions/{id}/revise
func (c *Client) ReviseSubscription(ctx context.Context, subscriptionID, planID string) (json.RawMessage, error) {
	return c.call(ctx, "revise", http.MethodPost, subscriptionPath(subscriptionID, "revise"), map[string]string{"plan_id": planID})
}

// ActivateSubscription reactivates a suspended subscription.
// POST /v1/billing/subscriptions/{id}/activate
func (c *Client) ActivateSubscription(ctx context.Context, subscriptionID, reason string) (json.RawMessage, error) {
	return c.call(ctx, "activate", http.MethodPost, subscriptionPath(subscriptionID, "activate"), map[string]string{"reason": reason})
}

func subscriptionPath(subscriptionID, action string) string {
	return "/v1/billing/subscriptions/" + url.PathEscape(subscriptionID) + "/" + action
}
