package pause_removal

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/toomate/cashier/internal/app/service/plan_catalog"
	"github.com/toomate/cashier/internal/models"
	"github.com/toomate/cashier/pkg/logctx"
	"github.com/toomate/cashier/pkg/types"
)

const (
	MsgAlreadyTopped   = "Already on topped plan, no update can be done"
	MsgDowngraded      = "Plan downgraded successfully on PayPal"
	ReactivationReason = "Reactivating subscription for user"
)

// ResolveResult is the outcome of a provider-side change. Resolvers report
// failures here instead of returning an error.
type ResolveResult struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

type PlanSource interface {
	Get(ctx context.Context) (*models.PaymentPlan, error)
}

// SubscriptionProvider is the billing provider surface the resolvers need.
type SubscriptionProvider interface {
	ReviseSubscription(ctx context.Context, subscriptionID, planID string) (json.RawMessage, error)
	ActivateSubscription(ctx context.Context, subscriptionID, reason string) (json.RawMessage, error)
}

type Resolver struct {
	plans    PlanSource
	provider SubscriptionProvider
	log      *zap.SugaredLogger
}

func NewResolver(plans PlanSource, provider SubscriptionProvider, log *zap.SugaredLogger) *Resolver {
	return &Resolver{plans: plans, provider: provider, log: log}
}

// RemoveDowngrade undoes a queued downgrade by revising the subscription to
// the plan of the other tier with the requested length. Subscriptions already
// on a pro plan are left untouched.
func (r *Resolver) RemoveDowngrade(ctx context.Context, subscriptionID, currentPlanID string, durationMonths int) *ResolveResult {
	lg := logctx.FromCtx(ctx, r.log)

	plan, err := r.plans.Get(ctx)
	if err != nil {
		lg.Errorw("downgrade_plans_unavailable", "subscription_id", subscriptionID, "error", err)
		return &ResolveResult{Success: false, Message: err.Error()}
	}

	if plan.Tier(currentPlanID) == types.PlanTierPro {
		lg.Infow("downgrade_skipped_pro", "subscription_id", subscriptionID, "plan_id", currentPlanID)
		return &ResolveResult{Success: true, Message: MsgAlreadyTopped}
	}

	target := plan_catalog.TargetPlanID(plan, currentPlanID, durationMonths)
	data, err := r.provider.ReviseSubscription(ctx, subscriptionID, target)
	if err != nil {
		return &ResolveResult{Success: false, Message: err.Error()}
	}
	lg.Infow("subscription_revised", "subscription_id", subscriptionID, "from_plan", currentPlanID, "to_plan", target)
	return &ResolveResult{Success: true, Data: data, Message: MsgDowngraded}
}

// ReactivateSubscription lifts a queued suspension or cancellation.
func (r *Resolver) ReactivateSubscription(ctx context.Context, subscriptionID string) *ResolveResult {
	data, err := r.provider.ActivateSubscription(ctx, subscriptionID, ReactivationReason)
	if err != nil {
		return &ResolveResult{Success: false, Message: "Error reactivating subscription: " + err.Error()}
	}
	logctx.FromCtx(ctx, r.log).Infow("subscription_reactivated", "subscription_id", subscriptionID)
	return &ResolveResult{Success: true, Data: data}
}
