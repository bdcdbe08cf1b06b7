package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertLog(ctx context.Context, db *gorm.DB, log *GatewayLog) error
	InsertTransaction(ctx context.Context, db *gorm.DB, record *TransactionRecord) (bool, error)
	FindTransaction(ctx context.Context, db *gorm.DB, id snowflake.ID) (*TransactionRecord, error)
	FindTransactionByDedupeKey(ctx context.Context, db *gorm.DB, key string) (*TransactionRecord, error)
}
