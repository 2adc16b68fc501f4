package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/imec-intel/hub/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

// IngestQueue receives upsert messages; rejected messages are moved to
// IngestQueue+"_dlq".
const IngestQueue = "ingest_queue"

// Init dials RabbitMQ at url.
func Init(url string) (*amqp091.Connection, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

// SetupQueues declares each queue and its dead-letter queue as durable.
// There is no retry queue: a message that fails once is dead-lettered.
func SetupQueues(ch *amqp091.Channel, queueNames []string) error {
	for _, name := range queueNames {
		for _, q := range []string{name, name + "_dlq"} {
			_, err := ch.QueueDeclare(
				q,
				true,  // durable
				false, // autoDelete
				false, // exclusive
				false, // noWait
				nil,   // args
			)
			if err != nil {
				return fmt.Errorf("failed to declare queue %s: %w", q, err)
			}
			logger.Debug("[Queue] Declared queue", "queue", q)
		}
	}
	return nil
}

// Publisher is the subset of *amqp091.Channel used to publish.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// PublishFIFO sends data to queueName through the default exchange as a
// persistent message.
func PublishFIFO(ctx context.Context, ch Publisher, queueName string, data []byte, headers amqp091.Table) error {
	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         data,
		Headers:      headers,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, publishing); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queueName, err)
	}
	return nil
}
