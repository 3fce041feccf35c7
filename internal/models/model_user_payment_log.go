package models

import (
	"fmt"
	"time"

	"github.com/toomate/cashier/pkg/types"
)

// UserPaymentLog is the append-only history of payment events for a
// subscription. Rows are never updated; new state is a new row.
type UserPaymentLog struct {
	ID                string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	SubscriptionID    string    `gorm:"column:subscription_id;type:varchar(64);not null;index:idx_logs_sub_user_created,priority:1" json:"subscription_id"`
	UserID            string    `gorm:"column:user_id;type:varchar(64);not null;index:idx_logs_sub_user_created,priority:2" json:"user_id"`
	Status            string    `gorm:"column:status;type:text;not null" json:"status"`
	IsCouponApplied   bool      `gorm:"column:is_coupon_applied;not null;default:false" json:"is_coupon_applied"`
	CouponCode        string    `gorm:"column:coupon_code;type:varchar(64)" json:"coupon_code"`
	BaseBillingPlanID string    `gorm:"column:base_billing_plan_id;type:varchar(64)" json:"base_billing_plan_id"`
	PlanName          string    `gorm:"column:plan_name;type:varchar(128)" json:"plan_name"`
	CreatedAt         time.Time `gorm:"index:idx_logs_sub_user_created,priority:3,sort:desc" json:"created_at"`
}

func (UserPaymentLog) TableName() string {
	return "user_payment_logs"
}

// PauseRemovedLog derives the log row written when a queued change is
// removed. Coupon and plan fields carry over from prev.
func (prev *UserPaymentLog) PauseRemovedLog(message, originalType types.SubscriptionChangeType) *UserPaymentLog {
	return &UserPaymentLog{
		SubscriptionID:    prev.SubscriptionID,
		UserID:            prev.UserID,
		Status:            fmt.Sprintf("Request %s Removed: %s", message, originalType),
		IsCouponApplied:   prev.IsCouponApplied,
		CouponCode:        prev.CouponCode,
		BaseBillingPlanID: prev.BaseBillingPlanID,
		PlanName:          prev.PlanName,
	}
}
