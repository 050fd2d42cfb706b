package collector

import (
	"gameinsights-backend/lib/telemetry"
)

var (
	tracer = telemetry.Tracer("gameinsights.lib.collector")
	meter  = telemetry.Meter("gameinsights.lib.collector")

	fetchTotal, _      = meter.Int64Counter("source_fetch_total")
	fetchSuccess, _    = meter.Int64Counter("source_fetch_success_total")
	fetchErrors, _     = meter.Int64Counter("source_fetch_error_total")
	fetchExceptions, _ = meter.Int64Counter("source_fetch_exception_total")
	fetchDuration, _   = meter.Float64Histogram("source_fetch_duration_seconds")
)
