package events

import (
	"context"
	"strings"

	"github.com/smallbiznis/widepay/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("events",
	fx.Provide(NewOutbox),
	fx.Provide(DefaultRelayConfig),
	fx.Provide(provideRelay),
	fx.Invoke(runRelay),
)

// provideRelay returns nil when no Kafka brokers are configured. Events still
// land in the outbox table and can be drained once a broker is available.
func provideRelay(db *gorm.DB, log *zap.Logger, cfg config.Config, relayCfg RelayConfig) (*Relay, error) {
	brokers := strings.TrimSpace(cfg.KafkaBrokers)
	if brokers == "" {
		log.Named("events.relay").Info("kafka brokers not configured, relay disabled")
		return nil, nil
	}

	producer, err := NewProducer(brokers)
	if err != nil {
		return nil, err
	}
	return NewRelay(db, log, producer, cfg.KafkaTopic, relayCfg), nil
}

func runRelay(lc fx.Lifecycle, relay *Relay) {
	if relay == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go relay.RunForever(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			relay.producer.Close()
			return nil
		},
	})
}
