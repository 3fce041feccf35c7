package models

import (
	"time"

	"github.com/samber/lo"
	"gorm.io/datatypes"

	"github.com/toomate/cashier/pkg/types"
)

// PaymentPlan is the singleton PayPal plan catalog. Each list holds one
// plan id per entry of types.DowngradeDurations, in the same order.
type PaymentPlan struct {
	ID                 string                      `gorm:"column:id;type:uuid;primary_key" json:"id"`
	ProProductID       datatypes.JSONSlice[string] `gorm:"column:pro_product_id;type:jsonb;not null" json:"pro_product_id"`
	EssentialProductID datatypes.JSONSlice[string] `gorm:"column:essential_product_id;type:jsonb;not null" json:"essential_product_id"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

func (PaymentPlan) TableName() string {
	return "payment_plan"
}

// Tier reports which list planID belongs to. Pro wins if an id is
// (mistakenly) present in both.
func (p *PaymentPlan) Tier(planID string) types.PlanTier {
	switch {
	case p == nil || planID == "":
		return types.PlanTierUnknown
	case lo.Contains(p.ProProductID, planID):
		return types.PlanTierPro
	case lo.Contains(p.EssentialProductID, planID):
		return types.PlanTierEssential
	}
	return types.PlanTierUnknown
}
