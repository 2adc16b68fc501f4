package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/imec-intel/hub/internal/queue"
	"github.com/imec-intel/hub/pkg/logger"
)

// Sink delivers one payload to a collection.
type Sink interface {
	Send(ctx context.Context, collection string, payload []byte) error
}

// Apply sends every payload of b to sink in apply order and stops at the
// first failure. It returns the number of payloads delivered.
func Apply(ctx context.Context, sink Sink, b Bundle) (int, error) {
	sent := 0
	for _, collection := range b.Collections() {
		for i, payload := range b[collection] {
			if err := sink.Send(ctx, collection, payload); err != nil {
				return sent, fmt.Errorf("%s[%d]: %w", collection, i, err)
			}
			sent++
		}
		logger.Info("[Seed] Collection applied", "collection", collection, "count", len(b[collection]))
	}
	return sent, nil
}

// HTTPSink posts payloads to a running API server.
type HTTPSink struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewHTTPSink(baseURL, apiKey string) *HTTPSink {
	return &HTTPSink{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type upsertResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
	Error  string `json:"error"`
	Field  string `json:"field"`
}

func (s *HTTPSink) Send(ctx context.Context, collection string, payload []byte) error {
	url := s.BaseURL + "/" + collection
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", s.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var out upsertResponse
	_ = json.Unmarshal(body, &out)

	if resp.StatusCode != http.StatusOK {
		if out.Error == "" {
			return fmt.Errorf("POST %s: %s", url, resp.Status)
		}
		if out.Field != "" {
			return fmt.Errorf("POST %s: %s: %s: %s", url, resp.Status, out.Field, out.Error)
		}
		return fmt.Errorf("POST %s: %s: %s", url, resp.Status, out.Error)
	}

	logger.Debug("[Seed] Upserted", "collection", collection, "id", out.ID)
	return nil
}

// QueueSink publishes payloads to the ingest queue for the worker.
type QueueSink struct {
	Publisher queue.Publisher
	APIKey    string
}

func (s *QueueSink) Send(ctx context.Context, collection string, payload []byte) error {
	return queue.PublishIngest(ctx, s.Publisher, s.APIKey, collection, payload)
}

// CatalogSink upserts directly into an in-process catalog.
type CatalogSink struct {
	Catalog queue.Ingester
	APIKey  string
}

func (s *CatalogSink) Send(ctx context.Context, collection string, payload []byte) error {
	id, err := s.Catalog.Ingest(ctx, s.APIKey, collection, payload)
	if err != nil {
		return err
	}
	logger.Debug("[Seed] Upserted", "collection", collection, "id", id)
	return nil
}
