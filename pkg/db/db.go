package db

import (
	"github.com/smallbiznis/widepay/internal/config"
	"github.com/smallbiznis/widepay/internal/events"
	"github.com/smallbiznis/widepay/internal/gateway/domain"
	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Module = fx.Module("db",
	fx.Provide(Open),
)

// Open connects to the sqlite database and migrates the gateway tables.
func Open(cfg config.Config) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = conn.AutoMigrate(
		&domain.GatewayLog{},
		&domain.TransactionRecord{},
		&events.OutboxRecord{},
	)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
