package models

import "time"

// SentEmail is one row of the append-only 'sent_emails' audit log.
type SentEmail struct {
	ID        int64     `json:"id" db:"id"`
	Sender    string    `json:"sender" db:"sender"`
	Recipient string    `json:"recipient" db:"recipient"`
	Subject   string    `json:"subject" db:"subject"`
	Body      string    `json:"body" db:"body"`
	SentAt    time.Time `json:"sent_at" db:"sent_at"`
}
