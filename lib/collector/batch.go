package collector

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"gameinsights-backend/lib/sources"
)

// FetchOutcome records how one identifier in a batch fared.
type FetchOutcome struct {
	Identifier string         `json:"identifier"`
	Success    bool           `json:"success"`
	Data       map[string]any `json:"data,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// GamesOptions tunes a GetGamesData batch.
type GamesOptions struct {
	// Recap reduces each record to the recap field set.
	Recap bool

	// IncludeFailures asks for the per-identifier outcome list. Without it
	// the outcome slice comes back nil.
	IncludeFailures bool

	// RaiseOnError propagates primary-source failures instead of absorbing
	// them. It takes precedence over IncludeFailures: on error the call
	// returns (nil, nil, err) with no partial results.
	RaiseOnError bool
}

// GetGamesData fetches merged game records for a batch of appids.
//
// In the default absorb mode every failure is folded into the outcome list
// and the call itself never fails; an empty input yields empty results. In
// propagate mode (RaiseOnError) an empty input is an InvalidRequestError and
// the first primary-source failure aborts the batch with a typed error.
func (c *Collector) GetGamesData(ctx context.Context, appids []string, opts GamesOptions) ([]map[string]any, []FetchOutcome, error) {
	if opts.RaiseOnError && len(appids) == 0 {
		return nil, nil, &InvalidRequestError{Message: "steam_appids must be a non-empty list."}
	}

	data := []map[string]any{}
	outcomes := []FetchOutcome{}
	total := len(appids)

	for idx, appid := range appids {
		slog.Info("fetching game data",
			"progress", fmt.Sprintf("%d of %d", idx+1, total),
			"steam_appid", appid,
		)

		payload, err := c.collectGame(ctx, appid, opts)
		if err != nil {
			if opts.RaiseOnError {
				return nil, nil, err
			}
			slog.Error("error fetching game data", "steam_appid", appid, "err", err)
			outcomes = append(outcomes, FetchOutcome{Identifier: appid, Success: false, Error: err.Error()})
			continue
		}

		data = append(data, payload)
		outcomes = append(outcomes, FetchOutcome{Identifier: appid, Success: true, Data: payload})
	}

	if !opts.IncludeFailures {
		outcomes = nil
	}
	return data, outcomes, nil
}

// collectGame fetches one record, converting a source panic into an error
// so an absorb-mode batch keeps going.
func (c *Collector) collectGame(ctx context.Context, appid string, opts GamesOptions) (payload map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetching %s: %v", appid, r)
		}
	}()

	game, err := c.fetchRaw(ctx, appid, opts.RaiseOnError)
	if err != nil {
		return nil, err
	}
	if opts.Recap {
		return game.Recap(), nil
	}
	return game.Map(), nil
}

// GetGamesActivePlayerData fetches the month-by-month player averages for a
// batch of appids and normalizes them into one table: every record carries
// the union of all observed month columns, missing numeric values filled
// with fillNA.
func (c *Collector) GetGamesActivePlayerData(ctx context.Context, appids []string, fillNA int, includeFailures bool) ([]map[string]any, []FetchOutcome, error) {
	if len(appids) == 0 {
		if includeFailures {
			return []map[string]any{}, []FetchOutcome{}, nil
		}
		return []map[string]any{}, nil, nil
	}

	allMonths := map[string]bool{}
	records := []map[string]any{}
	outcomes := []FetchOutcome{}
	total := len(appids)

	for idx, appid := range appids {
		slog.Info("fetching active player data",
			"progress", fmt.Sprintf("%d of %d", idx+1, total),
			"steam_appid", appid,
		)
		record := map[string]any{"steam_appid": appid}

		result := c.observeFetch(ctx, c.charts, appid, "id", sources.FetchOptions{
			SelectedLabels: []string{"name", "peak_active_player_all_time", "monthly_active_player"},
		})
		if result.Success {
			monthly, _ := result.Data["monthly_active_player"].([]map[string]any)
			for _, entry := range monthly {
				month, ok := entry["month"].(string)
				if !ok {
					continue
				}
				record[month] = entry["average_players"]
				allMonths[month] = true
			}
			record["name"] = result.Data["name"]
			record["peak_active_player_all_time"] = result.Data["peak_active_player_all_time"]
			outcomes = append(outcomes, FetchOutcome{Identifier: appid, Success: true, Data: record})
		} else {
			outcomes = append(outcomes, FetchOutcome{Identifier: appid, Success: false, Error: result.Error})
		}
		records = append(records, record)
	}

	sortedMonths := make([]string, 0, len(allMonths))
	for month := range allMonths {
		sortedMonths = append(sortedMonths, month)
	}
	sort.Strings(sortedMonths)

	// numeric columns get fillNA, string columns stay nil when absent
	normalized := make([]map[string]any, 0, len(records))
	for _, record := range records {
		row := map[string]any{
			"steam_appid": record["steam_appid"],
			"name":        record["name"],
		}
		for _, column := range append([]string{"peak_active_player_all_time"}, sortedMonths...) {
			if value, ok := record[column]; ok && value != nil {
				row[column] = value
			} else {
				row[column] = fillNA
			}
		}
		normalized = append(normalized, row)
	}

	if !includeFailures {
		outcomes = nil
	}
	return normalized, outcomes, nil
}

// GetUserData fetches profile and library data for a batch of steamids.
// Failures degrade to a record holding only the steamid, the batch never
// fails as a whole.
func (c *Collector) GetUserData(ctx context.Context, steamids []string, includeFreeGames bool) []map[string]any {
	results := []map[string]any{}
	total := len(steamids)

	for idx, steamid := range steamids {
		slog.Info("fetching user data",
			"progress", fmt.Sprintf("%d of %d", idx+1, total),
			"steamid", steamid,
		)

		result := c.observeFetch(ctx, c.user, steamid, "id", sources.FetchOptions{
			IncludeFreeGames: includeFreeGames,
		})
		if result.Success {
			results = append(results, result.Data)
		} else {
			results = append(results, map[string]any{"steamid": steamid})
		}
	}
	return results
}

// GetGameReview fetches the most recent review page for one appid. With
// reviewOnly the individual review entries are returned; otherwise a single
// record holding the full payload (summary included). A source failure
// yields an empty list, not an error.
func (c *Collector) GetGameReview(ctx context.Context, appid string, reviewOnly bool) ([]map[string]any, error) {
	if appid == "" {
		return nil, &InvalidRequestError{Message: "steam_appid must be a non-empty string."}
	}

	slog.Info("fetching reviews", "steam_appid", appid)

	result := c.reviews.FetchReviews(ctx, appid)
	if !result.Success {
		slog.Error("error fetching reviews", "steam_appid", appid, "err", result.Error)
		return []map[string]any{}, nil
	}

	if !reviewOnly {
		return []map[string]any{result.Data}, nil
	}

	entries, _ := result.Data["reviews"].([]any)
	records := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		if review, ok := entry.(map[string]any); ok {
			records = append(records, review)
		}
	}
	return records, nil
}
