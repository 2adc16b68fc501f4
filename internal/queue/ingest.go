package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/imec-intel/hub/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

// APIKeyHeader is the message header carrying the shared secret.
const APIKeyHeader = "x-api-key"

// IngestMsg is the body of a message on IngestQueue.
type IngestMsg struct {
	Collection string          `json:"collection"`
	Payload    json.RawMessage `json:"payload"`
}

// Ingester is satisfied by *catalog.Catalog.
type Ingester interface {
	Ingest(ctx context.Context, key, collection string, body []byte) (string, error)
}

// PublishIngest queues one upsert for the worker.
func PublishIngest(ctx context.Context, ch Publisher, apiKey, collection string, payload []byte) error {
	body, err := json.Marshal(IngestMsg{Collection: collection, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to encode ingest message: %w", err)
	}
	return PublishFIFO(ctx, ch, IngestQueue, body, amqp091.Table{APIKeyHeader: apiKey})
}

// ProcessIngestMessage decodes one delivery and upserts its payload.
func ProcessIngestMessage(ctx context.Context, cat Ingester, msg amqp091.Delivery) (string, error) {
	key, _ := msg.Headers[APIKeyHeader].(string)

	var data IngestMsg
	if err := json.Unmarshal(msg.Body, &data); err != nil {
		return "", fmt.Errorf("failed to decode ingest message: %w", err)
	}
	if data.Collection == "" {
		return "", errors.New("ingest message has no collection")
	}
	if len(data.Payload) == 0 {
		return "", errors.New("ingest message has no payload")
	}

	return cat.Ingest(ctx, key, data.Collection, data.Payload)
}

// HandleDelivery processes msg and settles it: acked on success, copied to
// the dead-letter queue and acked on failure. If the dead-letter publish
// fails the message is requeued.
func HandleDelivery(ctx context.Context, cat Ingester, ch Publisher, queueName string, msg amqp091.Delivery) {
	id, err := ProcessIngestMessage(ctx, cat, msg)
	if err == nil {
		if ackErr := msg.Ack(false); ackErr != nil {
			logger.Error("[Queue] Failed to ack message", "err", ackErr)
		}
		logger.Info("[Queue] Message processed successfully", "queue", queueName, "id", id)
		return
	}

	logger.Error("[Queue] Error processing message", "queue", queueName, "err", err)
	dlqName := queueName + "_dlq"
	headers := amqp091.Table{"x-error": err.Error()}
	for k, v := range msg.Headers {
		if k != APIKeyHeader {
			headers[k] = v
		}
	}

	if pubErr := PublishFIFO(ctx, ch, dlqName, msg.Body, headers); pubErr != nil {
		logger.Error("[Queue] Failed to publish to DLQ", "dlq", dlqName, "err", pubErr)
		if nackErr := msg.Nack(false, true); nackErr != nil {
			logger.Error("[Queue] Failed to nack message", "err", nackErr)
		}
		return
	}
	if ackErr := msg.Ack(false); ackErr != nil {
		logger.Error("[Queue] Failed to ack message", "err", ackErr)
	}
}

// Consume delivers IngestQueue messages one at a time until ctx is done or
// the channel closes.
func Consume(ctx context.Context, ch *amqp091.Channel, cat Ingester) error {
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := ch.Consume(
		IngestQueue,
		IngestQueue+"_consumer",
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	logger.Info("[Queue] Listening for messages", "queue", IngestQueue)
	for {
		select {
		case <-ctx.Done():
			logger.Info("[Queue] Stopping consumer", "queue", IngestQueue)
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("message channel closed")
			}
			HandleDelivery(ctx, cat, ch, IngestQueue, msg)
		}
	}
}
