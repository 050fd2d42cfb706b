package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"gameinsights-backend/lib/gamedata"
	"gameinsights-backend/lib/sources"
)

// observeFetch runs a single source fetch inside a span, recording timing
// and outcome counters. A panic from the source is counted and re-raised so
// the caller decides whether the batch absorbs it.
func (c *Collector) observeFetch(ctx context.Context, source sources.Source, identifier, scope string, opts sources.FetchOptions) sources.Result {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("fetch %s", source.Name()))
	defer span.End()

	attrs := metric.WithAttributes(
		attribute.String("source", source.Name()),
		attribute.String("scope", scope),
	)

	slog.Debug("source fetch start",
		"source", source.Name(),
		"scope", scope,
		"identifier", identifier,
	)

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			fetchExceptions.Add(ctx, 1, attrs)
			span.SetStatus(codes.Error, fmt.Sprint(r))
			slog.Error("source fetch panicked",
				"source", source.Name(),
				"scope", scope,
				"identifier", identifier,
				"panic", r,
			)
			panic(r)
		}
	}()

	result := source.Fetch(ctx, identifier, opts)
	duration := time.Since(start)

	fetchDuration.Record(ctx, duration.Seconds(), attrs)
	fetchTotal.Add(ctx, 1, attrs)
	if result.Success {
		fetchSuccess.Add(ctx, 1, attrs)
	} else {
		fetchErrors.Add(ctx, 1, attrs)
		span.SetStatus(codes.Error, result.Error)
	}

	slog.Debug("source fetch complete",
		"source", source.Name(),
		"scope", scope,
		"identifier", identifier,
		"success", result.Success,
		"duration_ms", duration.Milliseconds(),
	)

	return result
}

// fetchRaw merges every source's payload into one record for the appid.
// With propagate set, a primary-source failure is classified and returned
// as a typed error; supplementary failures are always skipped, their fields
// just stay absent.
func (c *Collector) fetchRaw(ctx context.Context, appid string, propagate bool) (*gamedata.Game, error) {
	ctx, span := tracer.Start(ctx, "Collector.fetchRaw")
	defer span.End()

	raw := map[string]any{"steam_appid": appid}

	for _, binding := range c.idBindings {
		result := c.observeFetch(ctx, binding.Source, appid, "id", sources.FetchOptions{})
		if result.Success {
			mergeFields(raw, result.Data, binding.Fields)
			continue
		}
		if propagate && binding.Primary {
			err := FailureFor(binding.Source.Name(), result.Error, true)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	// no name means the primary never resolved the game, so there is
	// nothing to search the name-keyed sources for
	if name, ok := raw["name"].(string); ok && name != "" {
		for _, binding := range c.nameBindings {
			result := c.observeFetch(ctx, binding.Source, name, "name", sources.FetchOptions{})
			if result.Success {
				mergeFields(raw, result.Data, binding.Fields)
			}
		}
	}

	return gamedata.Build(raw)
}

// mergeFields copies only the declared fields, so a source can never leak
// values into columns another source owns.
func mergeFields(raw, data map[string]any, fields []string) {
	for _, field := range fields {
		if value, ok := data[field]; ok {
			raw[field] = value
		}
	}
}
