package models

import (
	"time"

	"github.com/toomate/cashier/pkg/types"
)

// SubscriptionChangeRequest is a queued pause-type change (downgrade, suspend
// or cancel) waiting to be applied at the end of the billing period. The most
// recent row per (subscription_id, user_id) is authoritative.
type SubscriptionChangeRequest struct {
	ID             string                       `gorm:"column:id;type:uuid;primary_key" json:"id"`
	SubscriptionID string                       `gorm:"column:subscription_id;type:varchar(64);not null;index:idx_queue_sub_user_created,priority:1" json:"subscription_id"`
	UserID         string                       `gorm:"column:user_id;type:varchar(64);not null;index:idx_queue_sub_user_created,priority:2" json:"user_id"`
	Type           types.SubscriptionChangeType `gorm:"column:type;type:varchar(32);not null" json:"type"`
	CreatedAt      time.Time                    `gorm:"index:idx_queue_sub_user_created,priority:3,sort:desc" json:"created_at"`
	UpdatedAt      time.Time                    `json:"updated_at"`
}

func (SubscriptionChangeRequest) TableName() string {
	return "update_subscription_queue"
}
