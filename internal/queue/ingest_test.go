package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/imec-intel/hub/pkg/catalog"
	"github.com/imec-intel/hub/pkg/record"
	"github.com/imec-intel/hub/pkg/store/memstore"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "secret"

type fakeAck struct {
	acked   int
	nacked  int
	requeue bool
}

func (a *fakeAck) Ack(uint64, bool) error { a.acked++; return nil }
func (a *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked++
	a.requeue = requeue
	return nil
}
func (a *fakeAck) Reject(uint64, bool) error { return nil }

type published struct {
	key string
	msg amqp091.Publishing
}

type fakePublisher struct {
	sent []published
	err  error
}

func (p *fakePublisher) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp091.Publishing) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, published{key: key, msg: msg})
	return nil
}

const legalPayload = `{
	"id": "leg_1",
	"title": "Loi portuaire",
	"instrument_type": "law",
	"adoption_date": "2025-03-01",
	"country_id": "FR",
	"source_id": "src_1"
}`

func delivery(t *testing.T, ack *fakeAck, key, collection, payload string) amqp091.Delivery {
	t.Helper()
	body, err := json.Marshal(IngestMsg{Collection: collection, Payload: json.RawMessage(payload)})
	require.NoError(t, err)
	return amqp091.Delivery{
		Acknowledger: ack,
		Headers:      amqp091.Table{APIKeyHeader: key},
		Body:         body,
	}
}

func TestHandleDeliveryUpsertsAndAcks(t *testing.T) {
	cat := catalog.New(memstore.New(), testKey)
	ack := &fakeAck{}
	pub := &fakePublisher{}

	HandleDelivery(context.Background(), cat, pub, IngestQueue, delivery(t, ack, testKey, catalog.LegalInstruments, legalPayload))

	assert.Equal(t, 1, ack.acked)
	assert.Empty(t, pub.sent)

	got, err := cat.Get(context.Background(), catalog.LegalInstruments, "leg_1")
	require.NoError(t, err)
	assert.Equal(t, "Loi portuaire", got.(*record.LegalInstrument).Title)
}

func TestHandleDeliveryDeadLettersFailures(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		collection string
		payload    string
	}{
		{"wrong key", "nope", catalog.LegalInstruments, legalPayload},
		{"unknown collection", testKey, "widgets", legalPayload},
		{"invalid payload", testKey, catalog.LegalInstruments, `{"id": "leg_2"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := catalog.New(memstore.New(), testKey)
			ack := &fakeAck{}
			pub := &fakePublisher{}

			HandleDelivery(context.Background(), cat, pub, IngestQueue, delivery(t, ack, tt.key, tt.collection, tt.payload))

			assert.Equal(t, 1, ack.acked)
			assert.Zero(t, ack.nacked)
			require.Len(t, pub.sent, 1)
			assert.Equal(t, IngestQueue+"_dlq", pub.sent[0].key)
			assert.NotContains(t, pub.sent[0].msg.Headers, APIKeyHeader)
			assert.NotEmpty(t, pub.sent[0].msg.Headers["x-error"])

			items, err := cat.List(context.Background(), catalog.LegalInstruments, record.Filter{})
			require.NoError(t, err)
			assert.Empty(t, items)
		})
	}
}

func TestHandleDeliveryRequeuesWhenDLQUnavailable(t *testing.T) {
	cat := catalog.New(memstore.New(), testKey)
	ack := &fakeAck{}
	pub := &fakePublisher{err: errors.New("channel closed")}

	HandleDelivery(context.Background(), cat, pub, IngestQueue, delivery(t, ack, "nope", catalog.LegalInstruments, legalPayload))

	assert.Zero(t, ack.acked)
	assert.Equal(t, 1, ack.nacked)
	assert.True(t, ack.requeue)
}

func TestProcessIngestMessageRejectsMalformedBody(t *testing.T) {
	cat := catalog.New(memstore.New(), testKey)

	_, err := ProcessIngestMessage(context.Background(), cat, amqp091.Delivery{Body: []byte("not json")})
	assert.Error(t, err)

	_, err = ProcessIngestMessage(context.Background(), cat, amqp091.Delivery{Body: []byte(`{"collection":"legal"}`)})
	assert.ErrorContains(t, err, "no payload")
}

func TestPublishIngestSetsKeyHeader(t *testing.T) {
	pub := &fakePublisher{}

	err := PublishIngest(context.Background(), pub, testKey, catalog.Budgets, []byte(`{"id":"bud_1"}`))
	require.NoError(t, err)

	require.Len(t, pub.sent, 1)
	sent := pub.sent[0]
	assert.Equal(t, IngestQueue, sent.key)
	assert.Equal(t, testKey, sent.msg.Headers[APIKeyHeader])
	assert.Equal(t, amqp091.Persistent, sent.msg.DeliveryMode)

	var msg IngestMsg
	require.NoError(t, json.Unmarshal(sent.msg.Body, &msg))
	assert.Equal(t, catalog.Budgets, msg.Collection)
	assert.JSONEq(t, `{"id":"bud_1"}`, string(msg.Payload))
}
