package pause_removal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/toomate/cashier/internal/app/service/change_queue"
	"github.com/toomate/cashier/internal/models"
	"github.com/toomate/cashier/internal/platform/events"
	"github.com/toomate/cashier/internal/platform/paypal"
	"github.com/toomate/cashier/internal/platform/redislock"
	"github.com/toomate/cashier/pkg/logctx"
	"github.com/toomate/cashier/pkg/metrics"
	"github.com/toomate/cashier/pkg/types"
)

const (
	MsgRemoved         = "Request removed successfully"
	MsgNoRequest       = "No request found for this subscription"
	MsgTypeMismatch    = "Request type mismatch"
	MsgNoPaymentLog    = "No payment logs found; transaction never made"
	MsgPersistFailed   = "Error removing request or creating new log"
	MsgInProgress      = "Another request for this subscription is already being processed"
	MsgInvalidType     = "Invalid message type. Use downgrade, suspend, or cancel"
	MsgInvalidDuration = "Invalid downgrade duration. Use 1, 6, or 12"
)

// RemovePauseRequest asks to withdraw the queued change of type Message.
// IsRemoveDowngrade selects plan revision over reactivation.
type RemovePauseRequest struct {
	SubscriptionID    string `json:"subscriptionId"`
	UserID            string `json:"userId"`
	Message           string `json:"message"`
	IsRemoveDowngrade bool   `json:"isRemoveDowngrade"`
	DowngradeDuration int    `json:"downgradeDuration"`
}

// Validate checks the request shape. It does no I/O.
func (r *RemovePauseRequest) Validate() error {
	switch {
	case r == nil:
		return newRequestError(ErrInvalidRequest, "request body is required")
	case strings.TrimSpace(r.SubscriptionID) == "":
		return newRequestError(ErrInvalidRequest, "subscriptionId is required")
	case strings.TrimSpace(r.UserID) == "":
		return newRequestError(ErrInvalidRequest, "userId is required")
	case strings.TrimSpace(r.Message) == "":
		return newRequestError(ErrInvalidRequest, "message is required")
	case r.IsRemoveDowngrade && r.DowngradeDuration == 0:
		return newRequestError(ErrInvalidRequest, "downgradeDuration is required when isRemoveDowngrade is true")
	case !types.SubscriptionChangeType(r.Message).Valid():
		return newRequestError(ErrInvalidRequest, MsgInvalidType)
	case (r.IsRemoveDowngrade || r.DowngradeDuration != 0) && !lo.Contains(types.DowngradeDurations, r.DowngradeDuration):
		return newRequestError(ErrInvalidRequest, MsgInvalidDuration)
	}
	return nil
}

// RemovePauseResult describes a completed removal.
type RemovePauseResult struct {
	Message  string                 `json:"message"`
	Resolved *ResolveResult         `json:"-"`
	Log      *models.UserPaymentLog `json:"-"`
}

// resolver is satisfied by *Resolver.
type resolver interface {
	RemoveDowngrade(ctx context.Context, subscriptionID, currentPlanID string, durationMonths int) *ResolveResult
	ReactivateSubscription(ctx context.Context, subscriptionID string) *ResolveResult
}

type Service struct {
	store     change_queue.Store
	resolver  resolver
	locker    redislock.Locker
	publisher events.Publisher
	log       *zap.SugaredLogger
}

func NewService(store change_queue.Store, r *Resolver, locker redislock.Locker, publisher events.Publisher, log *zap.SugaredLogger) *Service {
	return newService(store, r, locker, publisher, log)
}

func newService(store change_queue.Store, r resolver, locker redislock.Locker, publisher events.Publisher, log *zap.SugaredLogger) *Service {
	return &Service{store: store, resolver: r, locker: locker, publisher: publisher, log: log}
}

// RemovePause withdraws the latest queued change for a subscription: it
// reverts the change at the provider, deletes the queue row and appends a
// payment log. Client-facing failures are *RequestError or *ResolverError;
// anything else is an unexpected backend failure.
func (s *Service) RemovePause(ctx context.Context, req *RemovePauseRequest) (res *RemovePauseResult, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { metrics.ObserveBusinessProcess("remove_pause", req.Message, start, err) }()

	lg := logctx.FromCtx(ctx, s.log).With("subscription_id", req.SubscriptionID, "user_id", req.UserID, "message", req.Message)

	res, queued, err := s.removeLocked(ctx, lg, req)
	if err != nil {
		return nil, err
	}
	// the lock is already released; a slow broker must not hold it
	s.publish(ctx, req, queued, res.Log)
	return res, nil
}

func (s *Service) removeLocked(ctx context.Context, lg *zap.SugaredLogger, req *RemovePauseRequest) (*RemovePauseResult, *models.SubscriptionChangeRequest, error) {
	release, err := s.locker.Acquire(ctx, redislock.Key(req.SubscriptionID, req.UserID))
	if err != nil {
		if errors.Is(err, redislock.ErrLocked) {
			lg.Warnw("remove_pause_locked")
			return nil, nil, newRequestError(ErrRequestInProgress, MsgInProgress)
		}
		return nil, nil, err
	}
	defer release()

	queued, last, err := s.lookup(ctx, req.SubscriptionID, req.UserID)
	if err != nil {
		lg.Errorw("remove_pause_lookup_failed", "error", err)
		return nil, nil, err
	}
	if queued == nil {
		return nil, nil, newRequestError(ErrNotFound, MsgNoRequest)
	}
	if string(queued.Type) != req.Message {
		return nil, nil, newRequestError(ErrTypeMismatch, MsgTypeMismatch)
	}
	if last == nil {
		return nil, nil, newRequestError(ErrNotFound, MsgNoPaymentLog)
	}

	var resolved *ResolveResult
	if req.IsRemoveDowngrade {
		pctx := paypal.WithRequestID(ctx, providerRequestID(queued.ID, "revise"))
		resolved = s.resolver.RemoveDowngrade(pctx, req.SubscriptionID, last.BaseBillingPlanID, req.DowngradeDuration)
	} else {
		pctx := paypal.WithRequestID(ctx, providerRequestID(queued.ID, "activate"))
		resolved = s.resolver.ReactivateSubscription(pctx, req.SubscriptionID)
	}
	if !resolved.Success {
		lg.Errorw("remove_pause_provider_failed", "detail", resolved.Message)
		return nil, nil, &ResolverError{Result: resolved}
	}

	entry := last.PauseRemovedLog(types.SubscriptionChangeType(req.Message), queued.Type)
	if err := s.store.RemoveRequestAndAppendLog(ctx, queued, entry); err != nil {
		lg.Errorw("remove_pause_persist_failed", "request_id", queued.ID, "error", err)
		return nil, nil, newRequestError(ErrPersistence, MsgPersistFailed)
	}
	lg.Infow("remove_pause_done", "request_id", queued.ID, "log_id", entry.ID, "downgrade", req.IsRemoveDowngrade)
	return &RemovePauseResult{Message: MsgRemoved, Resolved: resolved, Log: entry}, queued, nil
}

// providerRequestID keys PayPal's idempotency cache on the queued request,
// so a retried removal of the same request replays instead of re-applying.
func providerRequestID(queuedID, action string) string {
	return "cashier-" + queuedID + "-" + action
}

// lookup loads the latest queued request and payment log concurrently.
func (s *Service) lookup(ctx context.Context, subscriptionID, userID string) (*models.SubscriptionChangeRequest, *models.UserPaymentLog, error) {
	var (
		queued *models.SubscriptionChangeRequest
		last   *models.UserPaymentLog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		queued, err = s.store.LatestRequest(gctx, subscriptionID, userID)
		return err
	})
	g.Go(func() error {
		var err error
		last, err = s.store.LatestPaymentLog(gctx, subscriptionID, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return queued, last, nil
}

func (s *Service) publish(ctx context.Context, req *RemovePauseRequest, queued *models.SubscriptionChangeRequest, entry *models.UserPaymentLog) {
	ev := &events.PauseRemovedEvent{
		SubscriptionID: req.SubscriptionID,
		UserID:         req.UserID,
		Message:        req.Message,
		OriginalType:   string(queued.Type),
		Action:         lo.Ternary(req.IsRemoveDowngrade, "downgrade_removed", "reactivated"),
		PlanID:         entry.BaseBillingPlanID,
		LogID:          entry.ID,
		OccurredAt:     time.Now(),
	}
	if err := s.publisher.PublishPauseRemoved(ctx, ev); err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("remove_pause_publish_failed", "subscription_id", req.SubscriptionID, "error", err)
	}
}

// EnqueueRequest queues a pending change so it can later be removed.
func (s *Service) EnqueueRequest(ctx context.Context, subscriptionID, userID string, typ types.SubscriptionChangeType) (*models.SubscriptionChangeRequest, error) {
	switch {
	case strings.TrimSpace(subscriptionID) == "":
		return nil, newRequestError(ErrInvalidRequest, "subscriptionId is required")
	case strings.TrimSpace(userID) == "":
		return nil, newRequestError(ErrInvalidRequest, "userId is required")
	case !typ.Valid():
		return nil, newRequestError(ErrInvalidRequest, MsgInvalidType)
	}
	req := &models.SubscriptionChangeRequest{SubscriptionID: subscriptionID, UserID: userID, Type: typ}
	if err := s.store.EnqueueRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("enqueue %s for %s: %w", typ, subscriptionID, err)
	}
	return req, nil
}
