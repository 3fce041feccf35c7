package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toomate/cashier/internal/app/service/pause_removal"
	"github.com/toomate/cashier/internal/models"
	"github.com/toomate/cashier/pkg/response"
	"github.com/toomate/cashier/pkg/types"
)

// PauseRemover is implemented by *pause_removal.Service.
type PauseRemover interface {
	RemovePause(ctx context.Context, req *pause_removal.RemovePauseRequest) (*pause_removal.RemovePauseResult, error)
	EnqueueRequest(ctx context.Context, subscriptionID, userID string, typ types.SubscriptionChangeType) (*models.SubscriptionChangeRequest, error)
}

type QueueChangeRequest struct {
	SubscriptionID string                       `json:"subscriptionId"`
	UserID         string                       `json:"userId"`
	Type           types.SubscriptionChangeType `json:"type"`
}

// requestErrorStatus maps pause_removal error kinds to HTTP status codes.
func requestErrorStatus(err *pause_removal.RequestError) int {
	switch {
	case errors.Is(err, pause_removal.ErrInvalidRequest), errors.Is(err, pause_removal.ErrTypeMismatch):
		return http.StatusBadRequest
	case errors.Is(err, pause_removal.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pause_removal.ErrRequestInProgress):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeServiceError(c *gin.Context, err error) {
	var reqErr *pause_removal.RequestError
	if errors.As(err, &reqErr) {
		c.JSON(requestErrorStatus(reqErr), response.Error(reqErr.Message))
		return
	}
	var resErr *pause_removal.ResolverError
	if errors.As(err, &resErr) {
		c.JSON(http.StatusInternalServerError, response.ErrorT[json.RawMessage](resErr.Result.Message, resErr.Result.Data))
		return
	}
	c.JSON(http.StatusInternalServerError, response.Error("Error fetching subscription details: "+err.Error()))
}

// @Summary      Remove Subscription Pause
// @Description  Withdraws the latest queued downgrade, suspension or cancellation of a PayPal subscription.
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        request body pause_removal.RemovePauseRequest true "Remove pause request"
// @Success      200  {object}  handlers.RespOK
// @Failure      400  {object}  handlers.RespOK
// @Failure      404  {object}  handlers.RespOK
// @Failure      409  {object}  handlers.RespOK
// @Failure      500  {object}  handlers.RespOK
// @Router       /api/v1/subscription/remove_pause [post]
func ApiRemoveSubscriptionPause(svc PauseRemover) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req pause_removal.RemovePauseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Error("Invalid request body: "+err.Error()))
			return
		}
		res, err := svc.RemovePause(c.Request.Context(), &req)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OK(res.Message))
	}
}

// @Summary      Queue Subscription Change
// @Description  Queues a downgrade, suspension or cancellation to be applied at the end of the billing period.
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        request body handlers.QueueChangeRequest true "Queue change request"
// @Success      200  {object}  handlers.RespQueueChange
// @Failure      400  {object}  handlers.RespOK
// @Router       /api/v1/subscription/queue_change [post]
func ApiQueueSubscriptionChange(svc PauseRemover) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QueueChangeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Error("Invalid request body: "+err.Error()))
			return
		}
		queued, err := svc.EnqueueRequest(c.Request.Context(), req.SubscriptionID, req.UserID, req.Type)
		if err != nil {
			var reqErr *pause_removal.RequestError
			if errors.As(err, &reqErr) {
				c.JSON(requestErrorStatus(reqErr), response.Error(reqErr.Message))
				return
			}
			c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT("Request queued successfully", queued))
	}
}

func RegisterSubscriptionRoutes(r gin.IRouter, svc PauseRemover) {
	r.POST("/remove_pause", ApiRemoveSubscriptionPause(svc))
	r.POST("/queue_change", ApiQueueSubscriptionChange(svc))
}
