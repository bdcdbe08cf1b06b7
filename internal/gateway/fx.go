package gateway

import (
	"github.com/smallbiznis/widepay/internal/config"
	"github.com/smallbiznis/widepay/internal/gateway/repository"
	"github.com/smallbiznis/widepay/internal/gateway/service"
	"github.com/smallbiznis/widepay/internal/observability/metrics"
	"github.com/smallbiznis/widepay/internal/widepay"
	"go.uber.org/fx"
)

var Module = fx.Module("gateway",
	fx.Provide(repository.Provide),
	fx.Provide(provideAPIClient),
	fx.Provide(service.NewService),
)

func provideAPIClient(cfg config.Config, m *metrics.GatewayMetrics) *widepay.Client {
	return widepay.NewClient(widepay.Config{
		BaseURL:        cfg.APIBaseURL,
		WalletID:       cfg.WalletID,
		WalletToken:    cfg.WalletToken,
		ConnectTimeout: cfg.ConnectTimeout,
		RequestTimeout: cfg.RequestTimeout,
	}, m)
}
