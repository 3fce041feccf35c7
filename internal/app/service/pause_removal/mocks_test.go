package pause_removal

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/toomate/cashier/internal/app/service/change_queue"
	"github.com/toomate/cashier/internal/models"
	"github.com/toomate/cashier/internal/platform/events"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) LatestRequest(ctx context.Context, subscriptionID, userID string) (*models.SubscriptionChangeRequest, error) {
	args := m.Called(ctx, subscriptionID, userID)
	req, _ := args.Get(0).(*models.SubscriptionChangeRequest)
	return req, args.Error(1)
}

func (m *mockStore) LatestPaymentLog(ctx context.Context, subscriptionID, userID string) (*models.UserPaymentLog, error) {
	args := m.Called(ctx, subscriptionID, userID)
	log, _ := args.Get(0).(*models.UserPaymentLog)
	return log, args.Error(1)
}

func (m *mockStore) RemoveRequestAndAppendLog(ctx context.Context, req *models.SubscriptionChangeRequest, log *models.UserPaymentLog) error {
	return m.Called(ctx, req, log).Error(0)
}

func (m *mockStore) EnqueueRequest(ctx context.Context, req *models.SubscriptionChangeRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockStore) ScanPaymentLogs(ctx context.Context, req *change_queue.ScanRequest) (*change_queue.ScanResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*change_queue.ScanResponse)
	return res, args.Error(1)
}

type mockResolver struct{ mock.Mock }

func (m *mockResolver) RemoveDowngrade(ctx context.Context, subscriptionID, currentPlanID string, durationMonths int) *ResolveResult {
	return m.Called(ctx, subscriptionID, currentPlanID, durationMonths).Get(0).(*ResolveResult)
}

func (m *mockResolver) ReactivateSubscription(ctx context.Context, subscriptionID string) *ResolveResult {
	return m.Called(ctx, subscriptionID).Get(0).(*ResolveResult)
}

type mockLocker struct{ mock.Mock }

func (m *mockLocker) Acquire(ctx context.Context, key string) (func(), error) {
	args := m.Called(ctx, key)
	release, _ := args.Get(0).(func())
	return release, args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishPauseRemoved(ctx context.Context, ev *events.PauseRemovedEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *mockPublisher) Close() error { return nil }

type mockPlans struct{ mock.Mock }

func (m *mockPlans) Get(ctx context.Context) (*models.PaymentPlan, error) {
	args := m.Called(ctx)
	plan, _ := args.Get(0).(*models.PaymentPlan)
	return plan, args.Error(1)
}

type mockProvider struct{ mock.Mock }

func (m *mockProvider) ReviseSubscription(ctx context.Context, subscriptionID, planID string) (json.RawMessage, error) {
	args := m.Called(ctx, subscriptionID, planID)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *mockProvider) ActivateSubscription(ctx context.Context, subscriptionID, reason string) (json.RawMessage, error) {
	args := m.Called(ctx, subscriptionID, reason)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}
