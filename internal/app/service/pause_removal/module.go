package pause_removal

import (
	"go.uber.org/fx"

	"github.com/toomate/cashier/internal/app/service/plan_catalog"
	"github.com/toomate/cashier/internal/platform/paypal"
)

var Module = fx.Options(
	fx.Provide(
		fx.Annotate(NewResolver, fx.From(new(*plan_catalog.Service), new(*paypal.Client))),
		NewService,
	),
)
