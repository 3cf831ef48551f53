// Package email delivers outbound mail through a pluggable Sender and keeps
// an append-only audit of what was sent.
package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/01moynul/marketpro-admin/internal/models"
)

var ErrInvalidMessage = errors.New("email needs a recipient, a subject and a body")

// Message is one outbound email.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (m Message) validate() error {
	if strings.TrimSpace(m.To) == "" || strings.TrimSpace(m.Subject) == "" || strings.TrimSpace(m.Body) == "" {
		return ErrInvalidMessage
	}
	return nil
}

// Sender dispatches one message. Success means the transport accepted it.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// AuditLog records dispatched mail.
type AuditLog interface {
	RecordSentEmail(ctx context.Context, e models.SentEmail) (models.SentEmail, error)
}

// LogSender writes messages to the log instead of delivering them. It is the
// transport used in development.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(ctx context.Context, m Message) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "email (not delivered)",
		"from", m.From,
		"to", m.To,
		"subject", m.Subject,
		"body", m.Body,
	)
	return nil
}

// Notifier sends mail from the configured address and audits each send.
type Notifier struct {
	sender  Sender
	audit   AuditLog
	from    string
	adminTo string
	logger  *slog.Logger
	now     func() time.Time
}

func NewNotifier(sender Sender, audit AuditLog, from, adminTo string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		sender:  sender,
		audit:   audit,
		from:    from,
		adminTo: adminTo,
		logger:  logger,
		now:     time.Now,
	}
}

// AdminAddress is where send-to-self and catalog notifications go.
func (n *Notifier) AdminAddress() string {
	return n.adminTo
}

// Send dispatches m and, only when dispatch succeeded, writes the audit row.
// The returned error reflects dispatch alone; a failed audit write is logged.
func (n *Notifier) Send(ctx context.Context, m Message) error {
	if m.From == "" {
		m.From = n.from
	}
	if err := m.validate(); err != nil {
		return err
	}
	if err := n.sender.Send(ctx, m); err != nil {
		return fmt.Errorf("send email to %s: %w", m.To, err)
	}

	if n.audit == nil {
		return nil
	}
	_, err := n.audit.RecordSentEmail(ctx, models.SentEmail{
		Sender:    m.From,
		Recipient: m.To,
		Subject:   m.Subject,
		Body:      m.Body,
		SentAt:    n.now().UTC(),
	})
	if err != nil {
		n.logger.ErrorContext(ctx, "email sent but audit row not written", "to", m.To, "subject", m.Subject, "error", err)
	}
	return nil
}

// SendToSelf sends to the admin address.
func (n *Notifier) SendToSelf(ctx context.Context, subject, body string) error {
	return n.Send(ctx, Message{To: n.adminTo, Subject: subject, Body: body})
}

// ProductCreated tells the admin about a new catalog entry.
func (n *Notifier) ProductCreated(ctx context.Context, p models.Product) error {
	body := fmt.Sprintf(
		"A new product was added to the catalog.\n\nName: %s\nCategory: %s\nPrice: %s\nStock: %d\n\n%s",
		p.Name, p.Category, p.Price.StringFixed(2), p.Stock, p.Description,
	)
	return n.SendToSelf(ctx, "New product created: "+p.Name, body)
}
