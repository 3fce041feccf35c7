package types

// SubscriptionChangeType is the kind of queued change a user asked for.
type SubscriptionChangeType string

const (
	SubscriptionChangeTypeDowngrade SubscriptionChangeType = "downgrade"
	SubscriptionChangeTypeSuspend   SubscriptionChangeType = "suspend"
	SubscriptionChangeTypeCancel    SubscriptionChangeType = "cancel"
)

var SubscriptionChangeTypes = []SubscriptionChangeType{
	SubscriptionChangeTypeDowngrade,
	SubscriptionChangeTypeSuspend,
	SubscriptionChangeTypeCancel,
}

func (t SubscriptionChangeType) Valid() bool {
	switch t {
	case SubscriptionChangeTypeDowngrade, SubscriptionChangeTypeSuspend, SubscriptionChangeTypeCancel:
		return true
	}
	return false
}

// PlanTier is the billing tier a PayPal plan id belongs to.
type PlanTier string

const (
	PlanTierPro       PlanTier = "pro"
	PlanTierEssential PlanTier = "essential"
	PlanTierUnknown   PlanTier = "unknown"
)

// DowngradeDurations are the plan lengths, in months, offered per tier.
// The position in this slice is the index into a tier's plan id list.
var DowngradeDurations = []int{1, 6, 12}
