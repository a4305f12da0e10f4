package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/ghuser/webapp"

// Instruments are no-ops until Setup binds them to its MeterProvider.
var (
	authFailures     metric.Int64Counter
	productMutations metric.Int64Counter
	cacheLookups     metric.Int64Counter
	eventsHandled    metric.Int64Counter
)

func init() {
	bindInstruments(noop.NewMeterProvider())
}

func bindInstruments(mp metric.MeterProvider) {
	m := mp.Meter(meterName)
	authFailures, _ = m.Int64Counter("webapp.auth.failures",
		metric.WithDescription("Rejected credential presentations"))
	productMutations, _ = m.Int64Counter("webapp.product.mutations",
		metric.WithDescription("Committed product writes"))
	cacheLookups, _ = m.Int64Counter("webapp.cache.lookups",
		metric.WithDescription("Product cache lookups by result"))
	eventsHandled, _ = m.Int64Counter("webapp.events.handled",
		metric.WithDescription("Domain events processed by the worker"))
}

// RecordAuthFailure counts a rejected request. reason is "missing" or "invalid".
func RecordAuthFailure(ctx context.Context, reason string) {
	authFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordProductMutation counts a committed create, update or delete.
func RecordProductMutation(ctx context.Context, op string) {
	productMutations.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

// RecordCacheLookup counts a product cache hit or miss.
func RecordCacheLookup(ctx context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// RecordEventHandled counts one consumed domain event.
func RecordEventHandled(ctx context.Context, topic string, ok bool) {
	eventsHandled.Add(ctx, 1, metric.WithAttributes(
		attribute.String("topic", topic),
		attribute.Bool("ok", ok),
	))
}
