package events

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOutboxTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(`DROP TABLE IF EXISTS gateway_events`).Error; err != nil {
		t.Fatalf("drop gateway_events: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE gateway_events (
			id INTEGER PRIMARY KEY,
			event_type TEXT NOT NULL,
			event_key TEXT,
			payload TEXT,
			dedupe_key TEXT UNIQUE,
			published BOOLEAN NOT NULL DEFAULT false,
			created_at DATETIME
		)`,
	).Error; err != nil {
		t.Fatalf("create gateway_events: %v", err)
	}
	return db
}

func testOutbox(t *testing.T, db *gorm.DB) *Outbox {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewOutbox(db, node)
}

func TestOutboxPublishInsertsRow(t *testing.T) {
	db := setupOutboxTestDB(t)
	outbox := testOutbox(t, db)

	err := outbox.Publish(context.Background(), Event{
		Type:      EventChargeCreated,
		Key:       "client-1",
		DedupeKey: "charge:100",
		Payload:   map[string]any{"transaction_id": "55"},
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	var rows []OutboxRecord
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].EventType != EventChargeCreated {
		t.Fatalf("unexpected event type %q", rows[0].EventType)
	}
	if rows[0].EventKey != "client-1" {
		t.Fatalf("unexpected event key %q", rows[0].EventKey)
	}
	if rows[0].Published {
		t.Fatalf("expected unpublished row")
	}
}

func TestOutboxPublishDedupes(t *testing.T) {
	db := setupOutboxTestDB(t)
	outbox := testOutbox(t, db)

	event := Event{
		Type:      EventPaymentSettled,
		Key:       "client-1",
		DedupeKey: "notification:9:Recebido",
	}
	if err := outbox.Publish(context.Background(), event); err != nil {
		t.Fatalf("first publish: %v", err)
	}
	if err := outbox.Publish(context.Background(), event); err != nil {
		t.Fatalf("second publish: %v", err)
	}

	var count int64
	if err := db.Model(&OutboxRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row after duplicate publish, got %d", count)
	}
}

func TestOutboxPublishRejectsMissingType(t *testing.T) {
	db := setupOutboxTestDB(t)
	outbox := testOutbox(t, db)

	err := outbox.Publish(context.Background(), Event{Key: "client-1"})
	if err == nil {
		t.Fatalf("expected error for missing event type")
	}
}
