package store

import (
	"context"
	"fmt"
	"time"

	"github.com/01moynul/marketpro-admin/internal/models"
)

// RecordSentEmail appends one audit row. Rows are never updated or deleted.
func (s *Store) RecordSentEmail(ctx context.Context, e models.SentEmail) (models.SentEmail, error) {
	if e.SentAt.IsZero() {
		e.SentAt = time.Now().UTC()
	}
	err := s.withConn(ctx, func(q Querier) error {
		res, err := q.ExecContext(ctx,
			"INSERT INTO sent_emails (sender, recipient, subject, body, sent_at) VALUES (?, ?, ?, ?, ?)",
			e.Sender, e.Recipient, e.Subject, e.Body, e.SentAt,
		)
		if err != nil {
			return err
		}
		e.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return models.SentEmail{}, fmt.Errorf("record sent email: %w", err)
	}
	return e, nil
}

// ListSentEmails returns the newest audit rows first.
func (s *Store) ListSentEmails(ctx context.Context, limit int) ([]models.SentEmail, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	emails := []models.SentEmail{}
	err := s.withConn(ctx, func(q Querier) error {
		rows, err := q.QueryContext(ctx, `
			SELECT id, sender, recipient, subject, body, sent_at
			FROM sent_emails
			ORDER BY sent_at DESC, id DESC
			LIMIT ?`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var e models.SentEmail
			if err := rows.Scan(&e.ID, &e.Sender, &e.Recipient, &e.Subject, &e.Body, &e.SentAt); err != nil {
				return err
			}
			emails = append(emails, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list sent emails: %w", err)
	}
	return emails, nil
}
