package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/toomate/cashier/internal/app/service/change_queue"
	"github.com/toomate/cashier/internal/app/service/plan_catalog"
	"github.com/toomate/cashier/internal/models"
	"github.com/toomate/cashier/pkg/response"
)

type PaymentLogScanner interface {
	ScanPaymentLogs(ctx context.Context, req *change_queue.ScanRequest) (*change_queue.ScanResponse, error)
}

type PlanCatalog interface {
	Get(ctx context.Context) (*models.PaymentPlan, error)
	Upsert(ctx context.Context, plan *models.PaymentPlan) (*models.PaymentPlan, error)
}

type PaymentLogItem struct {
	ID                string `json:"id"`
	SubscriptionID    string `json:"subscription_id"`
	UserID            string `json:"user_id"`
	Status            string `json:"status"`
	IsCouponApplied   bool   `json:"is_coupon_applied"`
	CouponCode        string `json:"coupon_code"`
	BaseBillingPlanID string `json:"base_billing_plan_id"`
	PlanName          string `json:"plan_name"`
	CreatedAt         int64  `json:"created_at"`
}

type ListPaymentLogsResponse struct {
	Items []*PaymentLogItem `json:"items"`
	Total int64             `json:"total"`
}

type PaymentPlanRequest struct {
	ProProductID       []string `json:"pro_product_id"`
	EssentialProductID []string `json:"essential_product_id"`
}

func toPaymentLogItem(m *models.UserPaymentLog, _ int) *PaymentLogItem {
	return &PaymentLogItem{
		ID:                m.ID,
		SubscriptionID:    m.SubscriptionID,
		UserID:            m.UserID,
		Status:            m.Status,
		IsCouponApplied:   m.IsCouponApplied,
		CouponCode:        m.CouponCode,
		BaseBillingPlanID: m.BaseBillingPlanID,
		PlanName:          m.PlanName,
		CreatedAt:         m.CreatedAt.UnixMilli(),
	}
}

// @Summary      List Payment Logs (Admin)
// @Description  Retrieves a paginated and filterable list of subscription payment logs.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body change_queue.ScanRequest true "Filters, pagination and sorting"
// @Success      200  {object}  handlers.RespListPaymentLogs
// @Failure      400  {object}  handlers.RespOK
// @Router       /api/v1/admin/list_payment_logs [post]
func ApiListPaymentLogs(store PaymentLogScanner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req change_queue.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(err.Error()))
			return
		}
		res, err := store.ScanPaymentLogs(c.Request.Context(), &req)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, change_queue.ErrInvalidScan) {
				status = http.StatusBadRequest
			}
			c.JSON(status, response.Error(err.Error()))
			return
		}
		items := lo.Map(res.Items, toPaymentLogItem)
		c.JSON(http.StatusOK, response.OKT("ok", &ListPaymentLogsResponse{Items: items, Total: res.Total}))
	}
}

// @Summary      Get Payment Plans (Admin)
// @Description  Returns the PayPal plan ids per tier, ordered by duration (1, 6, 12 months).
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  handlers.RespPaymentPlan
// @Failure      404  {object}  handlers.RespOK
// @Router       /api/v1/admin/payment_plan [get]
func ApiGetPaymentPlan(catalog PlanCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		plan, err := catalog.Get(c.Request.Context())
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, plan_catalog.ErrPlansNotFound) {
				status = http.StatusNotFound
			}
			c.JSON(status, response.Error(err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT("ok", plan))
	}
}

// @Summary      Set Payment Plans (Admin)
// @Description  Replaces the PayPal plan ids. Each tier needs exactly one id per duration (1, 6, 12 months).
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body handlers.PaymentPlanRequest true "Plan ids per tier"
// @Success      200  {object}  handlers.RespPaymentPlan
// @Failure      400  {object}  handlers.RespOK
// @Router       /api/v1/admin/payment_plan [post]
func ApiSetPaymentPlan(catalog PlanCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(err.Error()))
			return
		}
		plan := &models.PaymentPlan{ProProductID: req.ProProductID, EssentialProductID: req.EssentialProductID}
		if err := plan_catalog.Validate(plan); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(err.Error()))
			return
		}
		saved, err := catalog.Upsert(c.Request.Context(), plan)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT("Payment plans saved", saved))
	}
}

func RegisterAdminRoutes(r gin.IRouter, store PaymentLogScanner, catalog PlanCatalog) {
	r.POST("/list_payment_logs", ApiListPaymentLogs(store))
	r.GET("/payment_plan", ApiGetPaymentPlan(catalog))
	r.POST("/payment_plan", ApiSetPaymentPlan(catalog))
}
