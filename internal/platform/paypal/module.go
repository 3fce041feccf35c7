package paypal

import (
	"go.uber.org/fx"

	"github.com/toomate/cashier/pkg/config"
)

func newConfig(cfg *config.Config) Config {
	return Config{
		BaseURL:         cfg.PayPal.BaseURL,
		ClientID:        cfg.PayPal.ClientID,
		ClientSecret:    cfg.PayPal.ClientSecret,
		Timeout:         cfg.PayPal.Timeout,
		BreakerFailures: cfg.PayPal.BreakerFailures,
		BreakerTimeout:  cfg.PayPal.BreakerTimeout,
	}
}

// Module exposes the PayPal client via Fx.
var Module = fx.Options(
	fx.Provide(newConfig),
	fx.Provide(fx.Annotate(NewOAuthTokenSupplier, fx.As(new(TokenSupplier)))),
	fx.Provide(NewClient),
)
