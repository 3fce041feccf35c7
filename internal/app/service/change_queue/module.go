package change_queue

import "go.uber.org/fx"

var Module = fx.Options(
	fx.Provide(fx.Annotate(NewGormStore, fx.As(new(Store)))),
)
