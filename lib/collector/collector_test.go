package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"gameinsights-backend/lib/sources"
	"gameinsights-backend/lib/telemetry"
)

type fakeSource struct {
	name      string
	labels    []string
	result    sources.Result
	panicWith any
	calls     []string
}

func (f *fakeSource) Name() string          { return f.name }
func (f *fakeSource) ValidLabels() []string { return f.labels }

func (f *fakeSource) Fetch(ctx context.Context, identifier string, opts sources.FetchOptions) sources.Result {
	f.calls = append(f.calls, identifier)
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	return f.result
}

func success(data map[string]any) sources.Result {
	return sources.Result{Success: true, Data: data}
}

func failure(message string) sources.Result {
	return sources.Result{Success: false, Error: message}
}

// testCollector wires fakes into the merge loop without touching the
// network.
func testCollector(primary, supplementary, named *fakeSource) *Collector {
	c := &Collector{}
	c.idBindings = []SourceBinding{
		{Source: primary, Primary: true, Fields: []string{"steam_appid", "name", "price_final"}},
	}
	if supplementary != nil {
		c.idBindings = append(c.idBindings, SourceBinding{
			Source: supplementary,
			Fields: []string{"active_player_24h"},
		})
	}
	if named != nil {
		c.nameBindings = []SourceBinding{
			{Source: named, Fields: []string{"comp_main"}},
		}
	}
	return c
}

func TestGetGamesDataMergesSources(t *testing.T) {
	defer telemetry.SetupForTesting(t, "collector-test")()

	primary := &fakeSource{name: "SteamStore", result: success(map[string]any{
		"steam_appid": "12345",
		"name":        "Mock Game",
		"price_final": 12.34,
		"unlisted":    "must not leak",
	})}
	charts := &fakeSource{name: "SteamCharts", result: failure("Failed to connect. Status code: 599. (timeout)")}
	hltb := &fakeSource{name: "HowLongToBeat", result: success(map[string]any{"comp_main": 600})}

	c := testCollector(primary, charts, hltb)
	data, outcomes, err := c.GetGamesData(context.Background(), []string{"12345"}, GamesOptions{IncludeFailures: true})
	require.NoError(t, err)
	require.Len(t, data, 1)
	require.Len(t, outcomes, 1)

	require.True(t, outcomes[0].Success)
	require.Equal(t, "12345", outcomes[0].Identifier)
	require.Equal(t, "Mock Game", data[0]["name"])
	require.Equal(t, 12.34, data[0]["price_final"])
	require.Equal(t, 600, data[0]["comp_main"])
	require.NotContains(t, data[0], "unlisted")

	// a failed supplementary source leaves its field nil, it never aborts
	require.Nil(t, data[0]["active_player_24h"])

	// the name-keyed source is queried with the resolved name, not the appid
	require.Equal(t, []string{"Mock Game"}, hltb.calls)
}

func TestGetGamesDataAbsorbsPrimaryFailure(t *testing.T) {
	primary := &fakeSource{name: "SteamStore", result: failure(
		"Failed to fetch data for appid 99999, or appid 99999 is not available in the specified region (us) or language (english).",
	)}
	hltb := &fakeSource{name: "HowLongToBeat", result: success(map[string]any{"comp_main": 600})}

	c := testCollector(primary, nil, hltb)
	data, outcomes, err := c.GetGamesData(context.Background(), []string{"99999"}, GamesOptions{IncludeFailures: true})
	require.NoError(t, err)
	require.Len(t, data, 1)
	require.True(t, outcomes[0].Success)
	require.Equal(t, "99999", data[0]["steam_appid"])
	require.Nil(t, data[0]["name"])

	// without a name, the name-keyed loop never runs
	require.Empty(t, hltb.calls)
}

func TestGetGamesDataPropagatesPrimaryNotFound(t *testing.T) {
	primary := &fakeSource{name: "SteamStore", result: failure(
		"Failed to fetch data for appid 99999, or appid 99999 is not available in the specified region (us) or language (english).",
	)}

	c := testCollector(primary, nil, nil)
	data, outcomes, err := c.GetGamesData(context.Background(), []string{"99999"}, GamesOptions{
		IncludeFailures: true,
		RaiseOnError:    true,
	})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "99999", notFound.Identifier)

	// RaiseOnError takes precedence over IncludeFailures: no partial results
	require.Nil(t, data)
	require.Nil(t, outcomes)
}

func TestGetGamesDataPropagatesPrimaryUnavailable(t *testing.T) {
	primary := &fakeSource{name: "SteamStore", result: failure("Failed to connect. Status code: 599. (timeout)")}

	c := testCollector(primary, nil, nil)
	_, _, err := c.GetGamesData(context.Background(), []string{"12345"}, GamesOptions{RaiseOnError: true})

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	require.Equal(t, "SteamStore", unavailable.Source)
}

func TestGetGamesDataPropagateStopsAtFirstFailure(t *testing.T) {
	primary := &fakeSource{name: "SteamStore", result: failure(
		"Failed to fetch data for appid 1, or appid 1 is not available in the specified region (us) or language (english).",
	)}

	c := testCollector(primary, nil, nil)
	data, outcomes, err := c.GetGamesData(context.Background(), []string{"1", "2", "3"}, GamesOptions{RaiseOnError: true})
	require.Error(t, err)
	require.Nil(t, data)
	require.Nil(t, outcomes)
	require.Equal(t, []string{"1"}, primary.calls)
}

func TestGetGamesDataEmptyInput(t *testing.T) {
	c := testCollector(&fakeSource{name: "SteamStore"}, nil, nil)

	data, outcomes, err := c.GetGamesData(context.Background(), nil, GamesOptions{IncludeFailures: true})
	require.NoError(t, err)
	require.Empty(t, data)
	require.Empty(t, outcomes)

	_, _, err = c.GetGamesData(context.Background(), nil, GamesOptions{RaiseOnError: true})
	var invalid *InvalidRequestError
	require.ErrorAs(t, err, &invalid)
}

func TestGetGamesDataOutcomesOnlyWhenRequested(t *testing.T) {
	primary := &fakeSource{name: "SteamStore", result: success(map[string]any{"steam_appid": "12345"})}

	c := testCollector(primary, nil, nil)
	data, outcomes, err := c.GetGamesData(context.Background(), []string{"12345"}, GamesOptions{})
	require.NoError(t, err)
	require.Len(t, data, 1)
	require.Nil(t, outcomes)
}

func TestGetGamesDataRecapProjection(t *testing.T) {
	primary := &fakeSource{name: "SteamStore", result: success(map[string]any{
		"steam_appid": "12345",
		"name":        "Mock Game",
	})}

	c := testCollector(primary, nil, nil)
	data, _, err := c.GetGamesData(context.Background(), []string{"12345"}, GamesOptions{Recap: true})
	require.NoError(t, err)
	require.Len(t, data, 1)
	require.Contains(t, data[0], "metacritic_score")
	require.NotContains(t, data[0], "count_retired")
	require.NotContains(t, data[0], "monthly_active_player")
}

func TestGetGamesDataAbsorbsPanics(t *testing.T) {
	primary := &fakeSource{name: "SteamStore", panicWith: errors.New("boom")}

	c := testCollector(primary, nil, nil)
	data, outcomes, err := c.GetGamesData(context.Background(), []string{"12345"}, GamesOptions{IncludeFailures: true})
	require.NoError(t, err)
	require.Empty(t, data)
	require.Len(t, outcomes, 1)
	require.False(t, outcomes[0].Success)
	require.Contains(t, outcomes[0].Error, "boom")
}

func TestGetGamesDataDuplicateAppidsFetchedIndependently(t *testing.T) {
	primary := &fakeSource{name: "SteamStore", result: success(map[string]any{"steam_appid": "12345"})}

	c := testCollector(primary, nil, nil)
	data, _, err := c.GetGamesData(context.Background(), []string{"12345", "12345"}, GamesOptions{})
	require.NoError(t, err)
	require.Len(t, data, 2)
	require.Equal(t, []string{"12345", "12345"}, primary.calls)
}

func TestCloseIsIdempotent(t *testing.T) {
	c := New(Options{})
	c.Close()
	c.Close()
}

func TestNewAppliesDefaults(t *testing.T) {
	c := New(Options{})
	defer c.Close()

	require.Equal(t, "us", c.opts.Region)
	require.Equal(t, "english", c.opts.Language)
	require.Equal(t, 60, c.opts.Calls)
	require.Len(t, c.IDSources(), 7)
	require.Len(t, c.NameSources(), 1)
	require.True(t, c.IDSources()[0].Primary)
	require.Equal(t, "SteamStore", c.IDSources()[0].Source.Name())
	require.Equal(t, "HowLongToBeat", c.NameSources()[0].Source.Name())
}

func TestSettersPropagateToSources(t *testing.T) {
	c := New(Options{})
	defer c.Close()

	c.SetRegion("de")
	c.SetLanguage("german")
	c.SetSteamAPIKey("steam-key")
	c.SetGamalyticAPIKey("gamalytic-key")

	require.Equal(t, "de", c.opts.Region)
	require.Equal(t, "german", c.opts.Language)
	require.Equal(t, "steam-key", c.opts.SteamAPIKey)
	require.Equal(t, "gamalytic-key", c.opts.GamalyticAPIKey)
}

func TestReconfigureReplacesWholeConfig(t *testing.T) {
	c := New(Options{Region: "de", Language: "german"})
	defer c.Close()

	c.Reconfigure(Options{SteamAPIKey: "steam-key"})

	// unset fields fall back to defaults, this is a full replacement
	require.Equal(t, "us", c.opts.Region)
	require.Equal(t, "english", c.opts.Language)
	require.Equal(t, "steam-key", c.opts.SteamAPIKey)
}
