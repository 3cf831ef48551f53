package email

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/01moynul/marketpro-admin/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

type fakeAudit struct {
	rows []models.SentEmail
	err  error
}

func (f *fakeAudit) RecordSentEmail(_ context.Context, e models.SentEmail) (models.SentEmail, error) {
	if f.err != nil {
		return models.SentEmail{}, f.err
	}
	e.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, e)
	return e, nil
}

func quietLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestSendAuditsAfterDispatch(t *testing.T) {
	sender := &fakeSender{}
	audit := &fakeAudit{}
	n := NewNotifier(sender, audit, "no-reply@marketpro.local", "admin@marketpro.local", quietLogger(&bytes.Buffer{}))
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return fixed }

	err := n.Send(context.Background(), Message{To: "ops@example.com", Subject: "Hello", Body: "World"})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	require.Equal(t, "no-reply@marketpro.local", sender.sent[0].From)
	require.Len(t, audit.rows, 1)
	require.Equal(t, models.SentEmail{
		ID:        1,
		Sender:    "no-reply@marketpro.local",
		Recipient: "ops@example.com",
		Subject:   "Hello",
		Body:      "World",
		SentAt:    fixed,
	}, audit.rows[0])
}

func TestSendFailureWritesNoAudit(t *testing.T) {
	sender := &fakeSender{err: errors.New("relay down")}
	audit := &fakeAudit{}
	n := NewNotifier(sender, audit, "a@b.c", "admin@b.c", quietLogger(&bytes.Buffer{}))

	err := n.Send(context.Background(), Message{To: "x@y.z", Subject: "s", Body: "b"})
	require.Error(t, err)
	require.Empty(t, audit.rows)
}

func TestAuditFailureDoesNotFailSend(t *testing.T) {
	var logs bytes.Buffer
	sender := &fakeSender{}
	n := NewNotifier(sender, &fakeAudit{err: errors.New("db gone")}, "a@b.c", "admin@b.c", quietLogger(&logs))

	require.NoError(t, n.Send(context.Background(), Message{To: "x@y.z", Subject: "s", Body: "b"}))
	require.Len(t, sender.sent, 1)
	require.Contains(t, logs.String(), "audit row not written")
}

func TestSendRejectsIncompleteMessage(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, nil, "a@b.c", "admin@b.c", nil)

	err := n.Send(context.Background(), Message{To: " ", Subject: "s", Body: "b"})
	require.ErrorIs(t, err, ErrInvalidMessage)
	require.Empty(t, sender.sent)
}

func TestProductCreatedGoesToAdmin(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, nil, "a@b.c", "admin@b.c", nil)

	err := n.ProductCreated(context.Background(), models.Product{
		Name:     "Desk Lamp",
		Category: "Lighting",
		Price:    decimal.RequireFromString("12.5"),
		Stock:    2,
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	require.Equal(t, "admin@b.c", sender.sent[0].To)
	require.Equal(t, "New product created: Desk Lamp", sender.sent[0].Subject)
	require.Contains(t, sender.sent[0].Body, "Price: 12.50")
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := LogSender{Logger: quietLogger(&buf)}

	require.NoError(t, s.Send(context.Background(), Message{To: "x@y.z", Subject: "Ping", Body: "pong"}))
	require.Contains(t, buf.String(), `"subject":"Ping"`)
}
