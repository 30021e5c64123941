package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	pkgkafka "github.com/storekit/catalog-search/pkg/kafka"

	"github.com/storekit/catalog-search/internal/searchindex"
)

// Kafka topics for catalog change events that keep the search index current.
const (
	TopicProductCreated = "catalog.product.created"
	TopicProductUpdated = "catalog.product.updated"
	TopicProductDeleted = "catalog.product.deleted"
)

// ProductEventData is the payload of product created/updated events. Names
// are keyed by language ID so the index can serve language-scoped searches.
type ProductEventData struct {
	ID        string           `json:"id"`
	Names     map[int64]string `json:"names"`
	Reference string           `json:"reference,omitempty"`
}

// ProductDeletedData is the payload of a product.deleted event.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// Consumer applies catalog change events to the product search index.
type Consumer struct {
	index  searchindex.ProductSearchIndex
	logger *slog.Logger
}

// NewConsumer creates an index upkeep consumer.
func NewConsumer(index searchindex.ProductSearchIndex, logger *slog.Logger) *Consumer {
	return &Consumer{index: index, logger: logger}
}

// Handle processes one catalog event based on its type. Unknown event types
// are logged and acknowledged, not retried.
func (c *Consumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TopicProductCreated, TopicProductUpdated:
		return c.handleUpsert(ctx, event)
	case TopicProductDeleted:
		return c.handleDelete(ctx, event)
	default:
		c.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

func (c *Consumer) handleUpsert(ctx context.Context, event *pkgkafka.Event) error {
	var data ProductEventData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}

	doc := &searchindex.ProductDocument{
		ID:        data.ID,
		Names:     data.Names,
		Reference: data.Reference,
	}
	if err := c.index.Index(ctx, doc); err != nil {
		return fmt.Errorf("index product from %s event: %w", event.EventType, err)
	}

	c.logger.InfoContext(ctx, "indexed product from catalog event",
		slog.String("product_id", data.ID),
		slog.String("event_type", event.EventType),
	)

	return nil
}

func (c *Consumer) handleDelete(ctx context.Context, event *pkgkafka.Event) error {
	var data ProductDeletedData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("unmarshal product.deleted data: %w", err)
	}

	if err := c.index.Delete(ctx, data.ID); err != nil {
		return fmt.Errorf("delete product from index: %w", err)
	}

	c.logger.InfoContext(ctx, "removed product from index",
		slog.String("product_id", data.ID),
	)

	return nil
}
