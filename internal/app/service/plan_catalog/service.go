package plan_catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/toomate/cashier/internal/models"
	"github.com/toomate/cashier/pkg/logctx"
	"github.com/toomate/cashier/pkg/tool"
	"github.com/toomate/cashier/pkg/types"
)

// ErrPlansNotFound means the catalog row is missing or unusable.
var ErrPlansNotFound = errors.New("Plans not found")

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// Get loads the plan catalog singleton.
func (s *Service) Get(ctx context.Context) (*models.PaymentPlan, error) {
	var plan models.PaymentPlan
	err := s.db.WithContext(ctx).Order("created_at").First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlansNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payment plan: %w", err)
	}
	if err := Validate(&plan); err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("payment_plan_invalid", "id", plan.ID, "error", err)
		return nil, ErrPlansNotFound
	}
	return &plan, nil
}

// Upsert replaces the id lists of the singleton, creating it on first use.
func (s *Service) Upsert(ctx context.Context, in *models.PaymentPlan) (*models.PaymentPlan, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	var out models.PaymentPlan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Order("created_at").First(&out).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			out = models.PaymentPlan{
				ID:                 tool.GenerateUUIDV7(),
				ProProductID:       in.ProProductID,
				EssentialProductID: in.EssentialProductID,
			}
			return tx.Create(&out).Error
		case err != nil:
			return err
		}
		out.ProProductID = in.ProProductID
		out.EssentialProductID = in.EssentialProductID
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save payment plan: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("payment_plan_saved", "id", out.ID)
	return &out, nil
}

// Validate requires one non-empty plan id per downgrade duration in each tier.
func Validate(plan *models.PaymentPlan) error {
	if plan == nil {
		return errors.New("payment plan is required")
	}
	for tier, ids := range map[types.PlanTier][]string{
		types.PlanTierPro:       plan.ProProductID,
		types.PlanTierEssential: plan.EssentialProductID,
	} {
		if len(ids) != len(types.DowngradeDurations) {
			return fmt.Errorf("%s plan list must hold %d ids, got %d", tier, len(types.DowngradeDurations), len(ids))
		}
		for i, id := range ids {
			if id == "" {
				return fmt.Errorf("%s plan id at index %d is empty", tier, i)
			}
		}
	}
	return nil
}

// DurationIndex maps a downgrade duration in months to its position in a
// tier list. Values other than 1 and 6 map to the 12 month slot.
func DurationIndex(months int) int {
	switch months {
	case 1:
		return 0
	case 6:
		return 1
	}
	return 2
}

// TargetPlanID picks the plan to revise to: essential subscribers go to the
// pro plan of the requested length, everyone else to the essential one.
func TargetPlanID(plan *models.PaymentPlan, currentPlanID string, months int) string {
	idx := DurationIndex(months)
	if plan.Tier(currentPlanID) == types.PlanTierEssential {
		return plan.ProProductID[idx]
	}
	return plan.EssentialProductID[idx]
}
