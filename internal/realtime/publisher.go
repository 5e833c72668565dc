package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/joshua-takyi/eventscape/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultQueue = "eventscape.changes"

// Publisher forwards change notifications to an external sink.
type Publisher interface {
	Publish(ctx context.Context, n *models.ChangeNotification) error
}

// AMQPPublisher writes notifications to a durable RabbitMQ queue on the default exchange.
type AMQPPublisher struct {
	conn  *amqp.Connection
	queue string
}

func NewAMQPPublisher(conn *amqp.Connection, queue string) *AMQPPublisher {
	if queue == "" {
		queue = DefaultQueue
	}
	return &AMQPPublisher{conn: conn, queue: queue}
}

func (p *AMQPPublisher) Publish(ctx context.Context, n *models.ChangeNotification) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: channel open failed: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: queue declare failed: %w", err)
	}

	msg, err := newPublishing(n, time.Now())
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: publish failed: %w", err)
	}
	return nil
}

func newPublishing(n *models.ChangeNotification, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(n)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("rabbitmq: marshal notification failed: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         n.Collection + "." + n.Operation,
		MessageId:    n.DocumentID,
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}
