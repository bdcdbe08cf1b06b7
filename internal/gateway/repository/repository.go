package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/widepay/internal/gateway/domain"
	"gorm.io/gorm"
)

type repository struct{}

// Provide builds the gorm-backed gateway repository.
func Provide() domain.Repository {
	return repository{}
}

func (repository) InsertLog(ctx context.Context, db *gorm.DB, log *domain.GatewayLog) error {
	if log == nil {
		return errors.New("missing_log")
	}
	return db.WithContext(ctx).Create(log).Error
}

// InsertTransaction stores a reconciled transaction. It reports false without
// error when a row with the same dedupe key already exists.
func (repository) InsertTransaction(ctx context.Context, db *gorm.DB, record *domain.TransactionRecord) (bool, error) {
	if record == nil || strings.TrimSpace(record.DedupeKey) == "" {
		return false, errors.New("missing_dedupe_key")
	}
	result := db.WithContext(ctx).Exec(
		`INSERT INTO gateway_transactions
		 (id, client_id, notification_id, transaction_id, dedupe_key, status, processor_status, amount, currency, allocations, received_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (dedupe_key) DO NOTHING`,
		record.ID,
		record.ClientID,
		record.NotificationID,
		record.TransactionID,
		record.DedupeKey,
		record.Status,
		record.ProcessorStatus,
		record.Amount,
		record.Currency,
		record.Allocations,
		record.ReceivedAt,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repository) FindTransaction(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.TransactionRecord, error) {
	var record domain.TransactionRecord
	err := db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (repository) FindTransactionByDedupeKey(ctx context.Context, db *gorm.DB, key string) (*domain.TransactionRecord, error) {
	var record domain.TransactionRecord
	err := db.WithContext(ctx).Where("dedupe_key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
