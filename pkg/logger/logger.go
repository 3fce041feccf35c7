package logger

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/toomate/cashier/pkg/config"
)

// New builds the process logger. Dev runs log at debug level with the
// console encoder; everything else uses the JSON production config.
func New(cfg *config.Config) (*zap.SugaredLogger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg != nil && cfg.Env == config.EnvDev {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.TimeKey = "time"
	l, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar().With("service", "cashier"), nil
}

func registerSync(lc fx.Lifecycle, l *zap.SugaredLogger) {
	lc.Append(fx.StopHook(func() {
		_ = l.Sync()
	}))
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(registerSync),
)
