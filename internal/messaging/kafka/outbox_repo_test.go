package kafka_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/haingladys/JSDC-Accounting/internal/messaging/kafka"
)

func pendingEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:      "4f1c1d1a-0000-0000-0000-000000000001",
		Topic:   "books.payroll.lifecycle.v1",
		Payload: []byte(`{"payroll_id":"x"}`),
		Status:  kafka.OutboxStatusPending,
	}
}

func newOutboxRepository(t *testing.T) (kafka.OutboxRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)

	return kafka.NewOutboxRepository(gormDB), mock
}

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a valid event", func(t *testing.T) {
		repo, mock := newOutboxRepository(t)
		mock.ExpectExec("INSERT INTO outbox_events").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, pendingEvent())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a malformed event before touching the database", func(t *testing.T) {
		repo, mock := newOutboxRepository(t)

		e := pendingEvent()
		e.Topic = ""
		err := repo.Create(ctx, e)

		assert.EqualError(t, err, "outbox topic is required")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestValidateOutboxEvent(t *testing.T) {
	t.Run("valid event passes", func(t *testing.T) {
		assert.NoError(t, kafka.ValidateOutboxEvent(pendingEvent()))
	})

	t.Run("missing id rejected", func(t *testing.T) {
		e := pendingEvent()
		e.ID = ""
		assert.EqualError(t, kafka.ValidateOutboxEvent(e), "outbox id is required")
	})

	t.Run("missing topic rejected", func(t *testing.T) {
		e := pendingEvent()
		e.Topic = ""
		assert.EqualError(t, kafka.ValidateOutboxEvent(e), "outbox topic is required")
	})

	t.Run("empty payload rejected", func(t *testing.T) {
		e := pendingEvent()
		e.Payload = nil
		assert.EqualError(t, kafka.ValidateOutboxEvent(e), "outbox payload is required")
	})

	t.Run("status whitelist", func(t *testing.T) {
		for _, status := range []string{kafka.OutboxStatusPending, kafka.OutboxStatusSent, kafka.OutboxStatusFailed} {
			e := pendingEvent()
			e.Status = status
			assert.NoError(t, kafka.ValidateOutboxEvent(e))
		}

		e := pendingEvent()
		e.Status = "queued"
		assert.EqualError(t, kafka.ValidateOutboxEvent(e), "invalid outbox status: queued")
	})
}
