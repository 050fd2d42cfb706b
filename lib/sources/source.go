// Package sources implements the nine upstream game-data providers. Every
// source satisfies the same narrow contract: it is queried with a single
// identifier (a Steam appid, a steamid, or a game name) and reports either a
// field map or a plain error string. All network specifics stay inside the
// individual source.
package sources

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gameinsights-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// SyntheticErrorCode marks transport failures that never produced an HTTP
// status. The classifier recognizes it as a connectivity error.
const SyntheticErrorCode = 599

// Result is the outcome of a single fetch. Exactly one of Data or Error is
// meaningful, selected by Success.
type Result struct {
	Success bool
	Data    map[string]any
	Error   string
}

type FetchOptions struct {
	// SelectedLabels restricts the returned field map to the listed labels.
	// Labels not valid for the source are logged and ignored.
	SelectedLabels []string

	// IncludeFreeGames is only honored by the SteamUser source.
	IncludeFreeGames bool
}

type Source interface {
	Name() string
	ValidLabels() []string
	Fetch(ctx context.Context, identifier string, opts FetchOptions) Result
}

type ClientOptions struct {
	// Calls per Period enforced across every source sharing the client.
	Calls  int
	Period time.Duration

	Timeout time.Duration
}

// NewClient builds the shared HTTP client every source of one collector
// uses. The client owns the connection pool; it must not be shared across
// collectors used from different goroutines.
func NewClient(opts ClientOptions) *resty.Client {
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(time.Millisecond * 500)
	client.SetRetryMaxWaitTime(time.Second * 8)
	client.SetHeader("User-Agent", browser.Random())
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	if opts.Calls > 0 && opts.Period > 0 {
		limiter := rate.NewLimiter(
			rate.Limit(float64(opts.Calls)/opts.Period.Seconds()),
			opts.Calls,
		)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(client, "gameinsights.lib.sources")
	return client
}

func successResult(data map[string]any) Result {
	return Result{Success: true, Data: data}
}

func errorResult(sourceName string, format string, args ...any) Result {
	message := fmt.Sprintf(format, args...)
	slog.Error(message, "source", sourceName)
	return Result{Success: false, Error: message}
}

// connectError renders a transport failure into the synthetic-status message
// shape the error classifier understands.
func connectError(sourceName string, err error) Result {
	return errorResult(
		sourceName,
		"Failed to connect. Status code: %d. (%v)",
		SyntheticErrorCode, err,
	)
}

// filterLabels reduces data to the selected labels. Labels outside the
// source's valid set are reported and dropped.
func filterLabels(sourceName string, data map[string]any, selected, valid []string) map[string]any {
	if len(selected) == 0 {
		return data
	}

	validSet := make(map[string]bool, len(valid))
	for _, label := range valid {
		validSet[label] = true
	}

	out := map[string]any{}
	var invalid []string
	for _, label := range selected {
		if !validSet[label] {
			invalid = append(invalid, label)
			continue
		}
		if value, ok := data[label]; ok {
			out[label] = value
		}
	}

	if len(invalid) > 0 {
		slog.Warn(
			"ignoring invalid labels",
			"source", sourceName,
			"invalid", invalid,
			"valid", valid,
		)
	}
	return out
}
