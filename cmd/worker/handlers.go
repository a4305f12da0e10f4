package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/webapp/pkg/cache"
	"github.com/ghuser/webapp/pkg/events"
	"github.com/ghuser/webapp/pkg/logger"
	productEvents "github.com/ghuser/webapp/services/product/domain/events"
	"github.com/ghuser/webapp/services/product/domain/models"
)

// cacheWriter is the subset of the product read-model cache the worker
// writes. Set drops a version older than the cached one and MarkDeleted
// blocks later Sets, so topics may be consumed in any order.
type cacheWriter interface {
	Set(ctx context.Context, p *models.Product) error
	MarkDeleted(ctx context.Context, id uuid.UUID) error
}

// productHandlers consumes product events. cache is nil when
// CACHE_ENABLED=false, in which case only the audit line is written.
type productHandlers struct {
	cache cacheWriter
	log   logger.Logger
	now   func() time.Time
}

func newProductHandlers(c cacheWriter, log logger.Logger) *productHandlers {
	return &productHandlers{cache: c, log: log, now: time.Now}
}

// handlers maps each product topic to its handler.
func (h *productHandlers) handlers() map[string]events.Handler {
	return map[string]events.Handler{
		productEvents.TopicProductCreated: h.handleChanged(productEvents.TopicProductCreated),
		productEvents.TopicProductUpdated: h.handleChanged(productEvents.TopicProductUpdated),
		productEvents.TopicProductDeleted: h.handleDeleted,
	}
}

// handleChanged warms the cache with the post-change state.
// Handlers must be idempotent; EventBus retries up to 3x on failure.
func (h *productHandlers) handleChanged(topic string) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.Decode[productEvents.ProductChangedEvent](msg)
		if err != nil {
			return err
		}
		h.audit(ctx, topic, evt.EventID, evt.ProductID, evt.OwnerID, evt.SKU, evt.OccurredAt)

		if h.cache == nil {
			return nil
		}
		// Past the TTL any newer entry or tombstone may have expired, so the
		// version check can no longer reject this event.
		if h.now().Sub(evt.OccurredAt) > cache.ProductCacheTTL {
			h.log.DebugContext(ctx, "skipping cache warm for expired event", "topic", topic, "event_id", evt.EventID)
			return nil
		}
		// Cache warming is best-effort; log but do not fail the handler.
		if err := h.cache.Set(ctx, evt.Product()); err != nil {
			h.log.WarnContext(ctx, "cache warm failed", "topic", topic, "product_id", evt.ProductID, "error", err)
		}
		return nil
	}
}

// handleDeleted tombstones the cached product. A failed write is retried so a
// deleted product is not served from cache until the TTL runs out.
func (h *productHandlers) handleDeleted(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[productEvents.ProductDeletedEvent](msg)
	if err != nil {
		return err
	}
	h.audit(ctx, productEvents.TopicProductDeleted, evt.EventID, evt.ProductID, evt.OwnerID, evt.SKU, evt.OccurredAt)

	if h.cache == nil {
		return nil
	}
	if err := h.cache.MarkDeleted(ctx, evt.ProductID); err != nil {
		return fmt.Errorf("tombstone product %s: %w", evt.ProductID, err)
	}
	return nil
}

func (h *productHandlers) audit(ctx context.Context, topic string, eventID, productID, ownerID uuid.UUID, sku string, occurredAt time.Time) {
	h.log.InfoContext(ctx, "audit",
		"topic", topic,
		"event_id", eventID,
		"product_id", productID,
		"account_id", ownerID,
		"sku", sku,
		"occurred_at", occurredAt,
	)
}
