// Package collector orchestrates fetches across every source and merges the
// per-source payloads into unified game records.
package collector

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"gameinsights-backend/lib/sources"
)

// Options configures a Collector. The zero value is usable: defaults are
// filled in by New.
type Options struct {
	// Region and Language steer the storefront responses.
	Region   string
	Language string

	// SteamAPIKey unlocks SteamUser and enriches the Steam web API calls.
	// GamalyticAPIKey raises the Gamalytic quota.
	SteamAPIKey     string
	GamalyticAPIKey string

	// Calls per Period is the shared outbound rate limit.
	Calls  int
	Period time.Duration
}

func (o *Options) withDefaults() Options {
	opts := *o
	if opts.Region == "" {
		opts.Region = "us"
	}
	if opts.Language == "" {
		opts.Language = "english"
	}
	if opts.Calls == 0 {
		opts.Calls = 60
	}
	if opts.Period == 0 {
		opts.Period = time.Minute
	}
	return opts
}

// SourceBinding attaches a source to the collector's merge loop: only the
// listed fields are copied from the source payload into the raw record.
type SourceBinding struct {
	Source sources.Source
	Fields []string

	// Primary marks the authoritative existence check. When it fails with
	// "not found", the identifier genuinely does not exist; supplementary
	// sources failing the same way are merely missing data.
	Primary bool
}

// Collector owns one shared HTTP client and one binding list. It is not
// safe for concurrent use; create one Collector per goroutine, each owns an
// independent connection pool.
type Collector struct {
	opts   Options
	client *resty.Client
	closed bool

	steamstore        *sources.SteamStore
	gamalytic         *sources.Gamalytic
	steamspy          *sources.SteamSpy
	steamcharts       *sources.SteamCharts
	steamreview       *sources.SteamReview
	steamachievements *sources.SteamAchievements
	protondb          *sources.ProtonDB
	steamuser         *sources.SteamUser
	howlongtobeat     *sources.HowLongToBeat

	// the batch operations go through these so the concrete sources can be
	// swapped out in tests
	charts  sources.Source
	user    sources.Source
	reviews reviewSource

	idBindings   []SourceBinding
	nameBindings []SourceBinding
}

// reviewSource is what GetGameReview needs beyond the plain Source contract.
type reviewSource interface {
	sources.Source
	FetchReviews(ctx context.Context, appid string) sources.Result
}

func New(opts Options) *Collector {
	opts = (&opts).withDefaults()

	c := &Collector{
		opts: opts,
		client: sources.NewClient(sources.ClientOptions{
			Calls:  opts.Calls,
			Period: opts.Period,
		}),
	}
	c.initSources()
	c.initBindings()
	return c
}

func (c *Collector) initSources() {
	c.steamstore = sources.NewSteamStore(c.client, c.opts.Region, c.opts.Language, c.opts.SteamAPIKey)
	c.gamalytic = sources.NewGamalytic(c.client, c.opts.GamalyticAPIKey)
	c.steamspy = sources.NewSteamSpy(c.client)
	c.steamcharts = sources.NewSteamCharts(c.client)
	c.steamreview = sources.NewSteamReview(c.client)
	c.steamachievements = sources.NewSteamAchievements(c.client, c.opts.SteamAPIKey)
	c.protondb = sources.NewProtonDB(c.client)
	c.steamuser = sources.NewSteamUser(c.client, c.opts.SteamAPIKey)
	c.howlongtobeat = sources.NewHowLongToBeat(c.client)

	c.charts = c.steamcharts
	c.user = c.steamuser
	c.reviews = c.steamreview
}

func (c *Collector) initBindings() {
	c.idBindings = []SourceBinding{
		{
			Source:  c.steamstore,
			Primary: true,
			Fields: []string{
				"steam_appid",
				"name",
				"developers",
				"publishers",
				"type",
				"price_currency",
				"price_initial",
				"price_final",
				"categories",
				"platforms",
				"genres",
				"metacritic_score",
				"release_date",
				"content_rating",
				"is_free",
				"is_coming_soon",
				"recommendations",
			},
		},
		{
			Source: c.gamalytic,
			Fields: []string{
				"average_playtime_h",
				"copies_sold",
				"estimated_revenue",
				"owners",
				"languages",
				"followers",
				"early_access",
			},
		},
		{
			Source: c.steamspy,
			Fields: []string{"ccu", "tags", "discount"},
		},
		{
			Source: c.steamcharts,
			Fields: []string{"active_player_24h", "peak_active_player_all_time", "monthly_active_player"},
		},
		{
			Source: c.steamreview,
			Fields: []string{
				"review_score",
				"review_score_desc",
				"total_positive",
				"total_negative",
				"total_reviews",
			},
		},
		{
			Source: c.steamachievements,
			Fields: []string{
				"achievements_count",
				"achievements_percentage_average",
				"achievements_list",
			},
		},
		{
			Source: c.protondb,
			Fields: []string{
				"protondb_tier",
				"protondb_score",
				"protondb_trending",
				"protondb_confidence",
				"protondb_total",
			},
		},
	}

	c.nameBindings = []SourceBinding{
		{
			Source: c.howlongtobeat,
			Fields: []string{
				"comp_main",
				"comp_plus",
				"comp_100",
				"comp_all",
				"comp_main_count",
				"comp_plus_count",
				"comp_100_count",
				"comp_all_count",
				"invested_co",
				"invested_mp",
				"invested_co_count",
				"invested_mp_count",
				"count_comp",
				"count_speed_run",
				"count_backlog",
				"count_review",
				"review_score",
				"count_playing",
				"count_retired",
			},
		},
	}
}

// IDSources returns the id-keyed binding list in fetch order.
func (c *Collector) IDSources() []SourceBinding { return c.idBindings }

// NameSources returns the name-keyed binding list in fetch order.
func (c *Collector) NameSources() []SourceBinding { return c.nameBindings }

func (c *Collector) SetRegion(region string) {
	if c.opts.Region != region {
		c.opts.Region = region
		c.steamstore.SetRegion(region)
	}
}

func (c *Collector) SetLanguage(language string) {
	if c.opts.Language != language {
		c.opts.Language = language
		c.steamstore.SetLanguage(language)
	}
}

func (c *Collector) SetSteamAPIKey(apiKey string) {
	if c.opts.SteamAPIKey != apiKey {
		c.opts.SteamAPIKey = apiKey
		c.steamstore.SetAPIKey(apiKey)
		c.steamachievements.SetAPIKey(apiKey)
		c.steamuser.SetAPIKey(apiKey)
	}
}

func (c *Collector) SetGamalyticAPIKey(apiKey string) {
	if c.opts.GamalyticAPIKey != apiKey {
		c.opts.GamalyticAPIKey = apiKey
		c.gamalytic.SetAPIKey(apiKey)
	}
}

// Reconfigure applies a new region/language/key configuration to the
// running collector, updating every dependent source. The rate limit is
// fixed at construction time and is not affected.
func (c *Collector) Reconfigure(opts Options) {
	opts = (&opts).withDefaults()
	c.SetRegion(opts.Region)
	c.SetLanguage(opts.Language)
	c.SetSteamAPIKey(opts.SteamAPIKey)
	c.SetGamalyticAPIKey(opts.GamalyticAPIKey)
}

// Close releases the pooled connections. Calling it again is a no-op.
func (c *Collector) Close() {
	if c.closed {
		return
	}
	c.client.GetClient().CloseIdleConnections()
	c.closed = true
}
