package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RelayConfig controls the outbox relay loop.
type RelayConfig struct {
	BatchSize    int
	PollInterval time.Duration
}

func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		BatchSize:    50,
		PollInterval: 2 * time.Second,
	}
}

func (c RelayConfig) withDefaults() RelayConfig {
	defaults := DefaultRelayConfig()
	if c.BatchSize <= 0 {
		c.BatchSize = defaults.BatchSize
	}

	if c.PollInterval <= 0 {
		c.PollInterval = defaults.PollInterval
	}
	return c
}

// Relay drains unpublished gateway_events rows into Kafka.
type Relay struct {
	db       *gorm.DB
	log      *zap.Logger
	producer *Producer
	topic    string
	cfg      RelayConfig
}

func NewRelay(db *gorm.DB, log *zap.Logger, producer *Producer, topic string, cfg RelayConfig) *Relay {
	return &Relay{
		db:       db,
		log:      log.Named("events.relay"),
		producer: producer,
		topic:    topic,
		cfg:      cfg.withDefaults(),
	}
}

func (r *Relay) RunForever(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := r.RunOnce(); err != nil {
			r.log.Warn("outbox relay run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (r *Relay) RunOnce() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.processBatch(ctx, r.cfg.BatchSize)
	return err
}

func (r *Relay) processBatch(ctx context.Context, limit int) (int, error) {
	if r.db == nil || r.producer == nil {
		return 0, errors.New("relay_unavailable")
	}
	if limit <= 0 {
		limit = r.cfg.BatchSize
	}

	var rows []OutboxRecord
	err := r.db.WithContext(ctx).
		Where("published = ?", false).
		Order("id asc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	processed := 0
	for _, row := range rows {
		value, err := json.Marshal(map[string]any{
			"id":         row.ID.String(),
			"event_type": row.EventType,
			"payload":    map[string]any(row.Payload),
			"created_at": row.CreatedAt.UTC().Format(time.RFC3339),
		})
		if err != nil {
			return processed, err
		}

		if err := r.producer.Produce(r.topic, row.EventKey, value); err != nil {
			return processed, err
		}

		err = r.db.WithContext(ctx).
			Model(&OutboxRecord{}).
			Where("id = ?", row.ID).
			Update("published", true).Error
		if err != nil {
			return processed, err
		}
		processed++
	}
	return processed, nil
}
