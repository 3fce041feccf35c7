package change_queue

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/toomate/cashier/internal/models"
	"github.com/toomate/cashier/pkg/types"
)

func newTestStore(t *testing.T) (*GormStore, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "cashier.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.SubscriptionChangeRequest{}, &models.UserPaymentLog{}))
	return NewGormStore(db, zap.NewNop().Sugar()), db
}

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func seedRequest(t *testing.T, db *gorm.DB, id, sub, user string, typ types.SubscriptionChangeType, at time.Time) *models.SubscriptionChangeRequest {
	t.Helper()
	req := &models.SubscriptionChangeRequest{ID: id, SubscriptionID: sub, UserID: user, Type: typ, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, db.Create(req).Error)
	return req
}

func seedLog(t *testing.T, db *gorm.DB, id, sub, user, status string, at time.Time) *models.UserPaymentLog {
	t.Helper()
	log := &models.UserPaymentLog{ID: id, SubscriptionID: sub, UserID: user, Status: status, BaseBillingPlanID: "P-ESS-1", CreatedAt: at}
	require.NoError(t, db.Create(log).Error)
	return log
}

func TestGormStore_LatestRequestPicksNewest(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	seedRequest(t, db, "a", "I-SUB", "u1", types.SubscriptionChangeTypeDowngrade, base)
	seedRequest(t, db, "b", "I-SUB", "u1", types.SubscriptionChangeTypeCancel, base.Add(time.Hour))
	seedRequest(t, db, "c", "I-SUB", "u2", types.SubscriptionChangeTypeSuspend, base.Add(2*time.Hour))

	req, err := s.LatestRequest(ctx, "I-SUB", "u1")
	require.NoError(t, err)
	require.Equal(t, "b", req.ID)
	require.Equal(t, types.SubscriptionChangeTypeCancel, req.Type)

	req, err = s.LatestRequest(ctx, "I-SUB", "nobody")
	require.NoError(t, err)
	require.Nil(t, req)
}

func TestGormStore_LatestPaymentLog(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	seedLog(t, db, "l1", "I-SUB", "u1", "Subscription Created", base)
	seedLog(t, db, "l2", "I-SUB", "u1", "Request cancel Added", base.Add(time.Minute))

	log, err := s.LatestPaymentLog(ctx, "I-SUB", "u1")
	require.NoError(t, err)
	require.Equal(t, "l2", log.ID)

	log, err = s.LatestPaymentLog(ctx, "I-OTHER", "u1")
	require.NoError(t, err)
	require.Nil(t, log)
}

func TestGormStore_RemoveRequestAndAppendLog(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	req := seedRequest(t, db, "a", "I-SUB", "u1", types.SubscriptionChangeTypeCancel, base)
	prev := seedLog(t, db, "l1", "I-SUB", "u1", "Request cancel Added", base)

	entry := prev.PauseRemovedLog(types.SubscriptionChangeTypeCancel, req.Type)
	require.NoError(t, s.RemoveRequestAndAppendLog(ctx, req, entry))
	require.NotEmpty(t, entry.ID)

	left, err := s.LatestRequest(ctx, "I-SUB", "u1")
	require.NoError(t, err)
	require.Nil(t, left)

	latest, err := s.LatestPaymentLog(ctx, "I-SUB", "u1")
	require.NoError(t, err)
	require.Equal(t, entry.ID, latest.ID)
	require.Equal(t, "Request cancel Removed: cancel", latest.Status)

	// a concurrent removal that lost the race writes nothing
	again := prev.PauseRemovedLog(types.SubscriptionChangeTypeCancel, req.Type)
	err = s.RemoveRequestAndAppendLog(ctx, req, again)
	require.ErrorIs(t, err, ErrNothingRemoved)

	var count int64
	require.NoError(t, db.Model(&models.UserPaymentLog{}).Where("status = ?", "Request cancel Removed: cancel").Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestGormStore_RemoveRollsBackWhenLogInsertFails(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	req := seedRequest(t, db, "a", "I-SUB", "u1", types.SubscriptionChangeTypeSuspend, base)
	prev := seedLog(t, db, "l1", "I-SUB", "u1", "Request suspend Added", base)

	entry := prev.PauseRemovedLog(types.SubscriptionChangeTypeSuspend, req.Type)
	entry.ID = prev.ID
	err := s.RemoveRequestAndAppendLog(ctx, req, entry)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNothingRemoved)

	still, err := s.LatestRequest(ctx, "I-SUB", "u1")
	require.NoError(t, err)
	require.NotNil(t, still)
	require.Equal(t, "a", still.ID)
}

func TestGormStore_EnqueueRequest(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	req := &models.SubscriptionChangeRequest{SubscriptionID: "I-SUB", UserID: "u1", Type: types.SubscriptionChangeTypeDowngrade}
	require.NoError(t, s.EnqueueRequest(ctx, req))
	require.NotEmpty(t, req.ID)

	got, err := s.LatestRequest(ctx, "I-SUB", "u1")
	require.NoError(t, err)
	require.Equal(t, req.ID, got.ID)
}

func TestGormStore_ScanPaymentLogs(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	seedLog(t, db, "l1", "I-SUB", "u1", "a", base)
	seedLog(t, db, "l2", "I-SUB", "u1", "b", base.Add(time.Minute))
	seedLog(t, db, "l3", "I-SUB", "u2", "c", base.Add(2*time.Minute))

	res, err := s.ScanPaymentLogs(ctx, &ScanRequest{
		Filters:   []*types.CommonFilter{{Field: "user_id", Operator: types.CommonFilterOperatorEq, Values: []any{"u1"}}},
		SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), res.Total)
	require.Len(t, res.Items, 2)
	require.Equal(t, "l1", res.Items[0].ID)
	require.Equal(t, "l2", res.Items[1].ID)

	_, err = s.ScanPaymentLogs(ctx, &ScanRequest{SortBy: "secret"})
	require.ErrorIs(t, err, ErrInvalidScan)
}
