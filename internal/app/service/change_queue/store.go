package change_queue

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/toomate/cashier/internal/models"
	"github.com/toomate/cashier/pkg/logctx"
	"github.com/toomate/cashier/pkg/tool"
	"github.com/toomate/cashier/pkg/types"
)

// ErrNothingRemoved means the queued request was already gone when the
// delete ran, typically because a concurrent request removed it first.
var ErrNothingRemoved = errors.New("queued request no longer exists")

// ErrInvalidScan wraps scan request validation failures.
var ErrInvalidScan = errors.New("invalid scan request")

// Store reads and mutates the change queue and the payment log.
type Store interface {
	// LatestRequest returns nil, nil when nothing is queued.
	LatestRequest(ctx context.Context, subscriptionID, userID string) (*models.SubscriptionChangeRequest, error)
	// LatestPaymentLog returns nil, nil when the subscription has no log.
	LatestPaymentLog(ctx context.Context, subscriptionID, userID string) (*models.UserPaymentLog, error)
	// RemoveRequestAndAppendLog deletes req and inserts log atomically.
	RemoveRequestAndAppendLog(ctx context.Context, req *models.SubscriptionChangeRequest, log *models.UserPaymentLog) error
	EnqueueRequest(ctx context.Context, req *models.SubscriptionChangeRequest) error
	ScanPaymentLogs(ctx context.Context, req *ScanRequest) (*ScanResponse, error)
}

type ScanRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanResponse struct {
	Items []*models.UserPaymentLog `json:"items"`
	Total int64                    `json:"total"`
}

// paymentLogColumns are the columns admin filters and sorting may reference.
var paymentLogColumns = map[string]bool{
	"id":                   true,
	"subscription_id":      true,
	"user_id":              true,
	"status":               true,
	"is_coupon_applied":    true,
	"coupon_code":          true,
	"base_billing_plan_id": true,
	"plan_name":            true,
	"created_at":           true,
}

type GormStore struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewGormStore(db *gorm.DB, log *zap.SugaredLogger) *GormStore {
	return &GormStore{db: db, log: log}
}

func (s *GormStore) LatestRequest(ctx context.Context, subscriptionID, userID string) (*models.SubscriptionChangeRequest, error) {
	var req models.SubscriptionChangeRequest
	err := s.db.WithContext(ctx).
		Where("subscription_id = ? AND user_id = ?", subscriptionID, userID).
		Order("created_at desc").
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load queued request: %w", err)
	}
	return &req, nil
}

func (s *GormStore) LatestPaymentLog(ctx context.Context, subscriptionID, userID string) (*models.UserPaymentLog, error) {
	var log models.UserPaymentLog
	err := s.db.WithContext(ctx).
		Where("subscription_id = ? AND user_id = ?", subscriptionID, userID).
		Order("created_at desc").
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payment log: %w", err)
	}
	return &log, nil
}

func (s *GormStore) RemoveRequestAndAppendLog(ctx context.Context, req *models.SubscriptionChangeRequest, log *models.UserPaymentLog) error {
	if req == nil || log == nil {
		return fmt.Errorf("nil request or log")
	}
	if log.ID == "" {
		log.ID = tool.GenerateUUIDV7()
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", req.ID).Delete(&models.SubscriptionChangeRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNothingRemoved
		}
		return tx.Create(log).Error
	})
	if err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("queue_remove_failed",
			"request_id", req.ID, "subscription_id", req.SubscriptionID, "error", err)
		if errors.Is(err, ErrNothingRemoved) {
			return err
		}
		return fmt.Errorf("failed to remove request and append log: %w", err)
	}
	return nil
}

func (s *GormStore) EnqueueRequest(ctx context.Context, req *models.SubscriptionChangeRequest) error {
	if req == nil {
		return fmt.Errorf("nil request")
	}
	if req.ID == "" {
		req.ID = tool.GenerateUUIDV7()
	}
	if err := s.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to enqueue request: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("queue_request_added",
		"request_id", req.ID, "subscription_id", req.SubscriptionID, "type", req.Type)
	return nil
}

// ScanPaymentLogs implements the paginated admin listing.
func (s *GormStore) ScanPaymentLogs(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	if err := req.normalize(); err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Model(&models.UserPaymentLog{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{types.FiltersAnd(req.Filters)}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count payment logs: %w", err)
	}

	var rows []*models.UserPaymentLog
	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment logs: %w", err)
	}
	return &ScanResponse{Items: rows, Total: total}, nil
}

// normalize applies paging defaults and rejects unknown columns.
func (r *ScanRequest) normalize() error {
	if r == nil {
		return fmt.Errorf("%w: nil request", ErrInvalidScan)
	}
	if r.Size <= 0 {
		r.Size = 10
	}
	if r.Size > 500 {
		r.Size = 500
	}
	if r.From < 0 {
		r.From = 0
	}
	if r.SortBy == "" {
		r.SortBy = "created_at"
	}
	if !paymentLogColumns[r.SortBy] {
		return fmt.Errorf("%w: unsupported sort field: %s", ErrInvalidScan, r.SortBy)
	}
	for _, f := range r.Filters {
		if err := f.Validate(paymentLogColumns); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidScan, err)
		}
	}
	return nil
}
