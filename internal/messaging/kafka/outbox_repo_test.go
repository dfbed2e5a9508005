package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func validEvent() OutboxEvent {
	return OutboxEvent{
		ID:            "3f1c0a52-1111-4222-8333-444455556666",
		RequestID:     "REQ-1",
		AggregateType: "employee",
		AggregateID:   "00001",
		EventType:     "employee_created",
		Topic:         "vidiemme.employee.lifecycle.v1",
		Payload:       []byte(`{"serial_number":"00001"}`),
		Status:        OutboxStatusPending,
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	t.Run("inserts a pending row", func(t *testing.T) {
		db, mock, _ := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		defer db.Close()

		event := validEvent()
		mock.ExpectExec("INSERT INTO outbox_events").
			WithArgs(
				event.ID, event.RequestID, event.AggregateType,
				event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewOutboxRepository(db)
		err := repo.Create(context.Background(), event)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("runs on the transaction when one is attached", func(t *testing.T) {
		db, mock, _ := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		defer db.Close()

		event := validEvent()
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO outbox_events").
			WithArgs(
				event.ID, event.RequestID, event.AggregateType,
				event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := NewOutboxRepository(db).WithTx(tx)
		assert.NoError(t, repo.Create(context.Background(), event))
		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an invalid event before touching the store", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		event := validEvent()
		event.Topic = ""

		repo := NewOutboxRepository(db)
		err := repo.Create(context.Background(), event)

		assert.EqualError(t, err, "outbox topic is required")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, _ := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "coalesce",
	}).AddRow(
		"3f1c0a52-1111-4222-8333-444455556666", "employee", "00001", "employee_created",
		"vidiemme.employee.lifecycle.v1", []byte(`{}`), OutboxStatusPending, 0, now,
	).AddRow(
		"3f1c0a52-1111-4222-8333-444455557777", "employee", "00002", "employee_deleted",
		"vidiemme.employee.lifecycle.v1", []byte(`{}`), OutboxStatusFailed, 2, now,
	)

	mock.ExpectQuery("SELECT .+ FROM outbox_events").
		WithArgs(OutboxStatusPending, OutboxStatusFailed, 50).
		WillReturnRows(rows)

	repo := NewOutboxRepository(db)
	events, err := repo.ListPending(context.Background(), 50)

	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "employee_created", events[0].EventType)
	assert.Equal(t, 2, events[1].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSent(t *testing.T) {
	db, mock, _ := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	defer db.Close()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("some-id", OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOutboxRepository(db)
	assert.NoError(t, repo.MarkSent(context.Background(), "some-id"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, _ := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	defer db.Close()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("some-id", OutboxStatusFailed, "broker unreachable").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOutboxRepository(db)
	assert.NoError(t, repo.MarkFailed(context.Background(), "some-id", "broker unreachable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateOutboxEvent(validEvent()))
	})

	t.Run("missing id", func(t *testing.T) {
		e := validEvent()
		e.ID = ""
		assert.Error(t, ValidateOutboxEvent(e))
	})

	t.Run("empty payload", func(t *testing.T) {
		e := validEvent()
		e.Payload = nil
		assert.Error(t, ValidateOutboxEvent(e))
	})

	t.Run("unknown status", func(t *testing.T) {
		e := validEvent()
		e.Status = "queued"
		assert.EqualError(t, ValidateOutboxEvent(e), "invalid outbox status: queued")
	})
}
