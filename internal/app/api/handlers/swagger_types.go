package handlers

import (
	"github.com/toomate/cashier/internal/models"
)

// RespOK is the envelope for endpoints returning only a message.
type RespOK struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RespQueueChange wraps the queued request in the standard envelope.
type RespQueueChange struct {
	Success bool                             `json:"success"`
	Message string                           `json:"message"`
	Data    models.SubscriptionChangeRequest `json:"data"`
}

// RespListPaymentLogs wraps ListPaymentLogsResponse in the standard envelope.
type RespListPaymentLogs struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Data    ListPaymentLogsResponse `json:"data"`
}

// RespPaymentPlan wraps the plan catalog in the standard envelope.
type RespPaymentPlan struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    SwaggerPaymentPlan `json:"data"`
}

// SwaggerPaymentPlan documents models.PaymentPlan, whose jsonb columns swag cannot describe.
type SwaggerPaymentPlan struct {
	ID                 string   `json:"id"`
	ProProductID       []string `json:"pro_product_id"`
	EssentialProductID []string `json:"essential_product_id"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}
