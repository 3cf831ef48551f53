package email

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPSender hands messages to a mail relay by publishing them as JSON onto
// a durable queue.
type AMQPSender struct {
	conn  *amqp.Connection
	mu    sync.Mutex
	ch    *amqp.Channel
	queue string
}

// DialAMQP connects to the broker and declares the queue.
func DialAMQP(url, queue string) (*AMQPSender, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	s, err := NewAMQPSender(conn, queue)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func NewAMQPSender(conn *amqp.Connection, queue string) (*AMQPSender, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare the queue so publish never fails due to missing infra.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare %s: %w", queue, err)
	}

	return &AMQPSender{conn: conn, ch: ch, queue: queue}, nil
}

func (s *AMQPSender) Send(ctx context.Context, m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	// amqp channels are not safe for concurrent publishes.
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ch.PublishWithContext(
		pubCtx,
		"",      // default exchange
		s.queue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

func (s *AMQPSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ch.Close(); err != nil {
		s.conn.Close()
		return err
	}
	return s.conn.Close()
}
