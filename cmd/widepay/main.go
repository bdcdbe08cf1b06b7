package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/widepay/internal/clock"
	"github.com/smallbiznis/widepay/internal/config"
	"github.com/smallbiznis/widepay/internal/events"
	"github.com/smallbiznis/widepay/internal/gateway"
	"github.com/smallbiznis/widepay/internal/observability/logger"
	"github.com/smallbiznis/widepay/internal/observability/metrics"
	"github.com/smallbiznis/widepay/internal/observability/tracing"
	"github.com/smallbiznis/widepay/internal/server"
	"github.com/smallbiznis/widepay/pkg/db"
	"go.uber.org/fx"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		tracing.Module,
		metrics.Module,
		clock.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		events.Module,
		gateway.Module,
		server.Module,
	)
	app.Run()
}
