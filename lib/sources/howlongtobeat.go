package sources

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/go-resty/resty/v2"
)

var howLongToBeatLabels = []string{
	"game_id",
	"game_name",
	"game_type",
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
}

// timeLabels are reported by the API in seconds and exposed in minutes,
// reading from the *_avg variant shown on the website.
var hltbTimeLabels = map[string]bool{
	"comp_main":   true,
	"comp_plus":   true,
	"comp_100":    true,
	"comp_all":    true,
	"invested_co": true,
	"invested_mp": true,
}

var nextDataRegex = regexp.MustCompile(`(?s)<script id="__NEXT_DATA__".*?>(.*?)</script>`)

// HowLongToBeat is the only name-keyed source. The workflow is three steps:
// obtain a session token from the finder init endpoint, search with the
// token, then scrape the game page's __NEXT_DATA__ blob for full numbers
// (falling back to the search hit when the page fetch fails).
type HowLongToBeat struct {
	client  *resty.Client
	baseURL string
}

func NewHowLongToBeat(client *resty.Client) *HowLongToBeat {
	return &HowLongToBeat{
		client:  client,
		baseURL: "https://howlongtobeat.com",
	}
}

func (h *HowLongToBeat) Name() string          { return "HowLongToBeat" }
func (h *HowLongToBeat) ValidLabels() []string { return howLongToBeatLabels }

func (h *HowLongToBeat) Fetch(ctx context.Context, gameName string, opts FetchOptions) Result {
	token := h.fetchSearchToken(ctx)
	if token == "" {
		return errorResult(h.Name(), "Failed to obtain search token.")
	}

	hits, result := h.search(ctx, gameName, token)
	if !result.Success {
		return result
	}
	if len(hits) == 0 {
		return errorResult(h.Name(), "Game is not found.")
	}

	best := bestHit(gameName, hits)
	full := best
	if gameID, ok := best["game_id"].(float64); ok {
		if page := h.fetchGamePage(ctx, int(gameID)); page != nil {
			full = page
		}
	}

	data := h.transform(full)
	return successResult(filterLabels(h.Name(), data, opts.SelectedLabels, howLongToBeatLabels))
}

func (h *HowLongToBeat) fetchSearchToken(ctx context.Context) string {
	res, err := h.client.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"Accept":         "*/*",
			"Referer":        h.baseURL + "/",
			"Sec-Fetch-Dest": "empty",
			"Sec-Fetch-Mode": "cors",
			"Sec-Fetch-Site": "same-origin",
		}).
		Get(h.baseURL + "/api/finder/init")
	if err != nil || res.StatusCode() != 200 {
		return ""
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return ""
	}
	return body.Token
}

func (h *HowLongToBeat) search(ctx context.Context, gameName, token string) ([]map[string]any, Result) {
	res, err := h.client.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"Content-Type":   "application/json",
			"Accept":         "*/*",
			"Referer":        h.baseURL + "/",
			"Origin":         h.baseURL,
			"Sec-Fetch-Dest": "empty",
			"Sec-Fetch-Mode": "cors",
			"Sec-Fetch-Site": "same-origin",
			"x-auth-token":   token,
		}).
		SetBody(searchPayload(gameName)).
		Post(h.baseURL + "/api/finder")
	if err != nil {
		return nil, errorResult(h.Name(), "Failed to fetch data.")
	}
	if res.StatusCode() != 200 {
		return nil, errorResult(h.Name(), "Failed to fetch data with status code: %d.", res.StatusCode())
	}

	var body struct {
		Count int              `json:"count"`
		Data  []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return nil, errorResult(h.Name(), "Failed to parse search response.")
	}
	if body.Count == 0 {
		return nil, Result{Success: true}
	}
	return body.Data, Result{Success: true}
}

func (h *HowLongToBeat) fetchGamePage(ctx context.Context, gameID int) map[string]any {
	res, err := h.client.R().
		SetContext(ctx).
		SetHeader("Referer", h.baseURL+"/").
		Get(h.baseURL + "/game/" + strconv.Itoa(gameID))
	if err != nil || res.StatusCode() != 200 {
		return nil
	}

	match := nextDataRegex.FindSubmatch(res.Body())
	if match == nil {
		return nil
	}

	var next struct {
		Props struct {
			PageProps struct {
				Game struct {
					Data struct {
						Game []map[string]any `json:"game"`
					} `json:"data"`
				} `json:"game"`
			} `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal(match[1], &next); err != nil {
		return nil
	}
	if len(next.Props.PageProps.Game.Data.Game) == 0 {
		return nil
	}
	return next.Props.PageProps.Game.Data.Game[0]
}

// bestHit picks the search hit whose name is closest to the queried one.
// The API already sorts by popularity, so ties keep the first hit.
func bestHit(gameName string, hits []map[string]any) map[string]any {
	best := hits[0]
	bestScore := -1.0
	target := strings.ToLower(gameName)
	for _, hit := range hits {
		name, _ := hit["game_name"].(string)
		score := matchr.JaroWinkler(target, strings.ToLower(name), false)
		if score > bestScore {
			bestScore = score
			best = hit
		}
	}
	return best
}

func (h *HowLongToBeat) transform(data map[string]any) map[string]any {
	out := map[string]any{}
	for _, label := range howLongToBeatLabels {
		raw := data[label]
		if hltbTimeLabels[label] {
			raw = data[label+"_avg"]
		}

		// time fields arrive in seconds, expose minutes
		if raw != nil && (strings.HasPrefix(label, "comp_") || strings.HasPrefix(label, "invested_")) && !strings.HasSuffix(label, "_count") {
			if seconds, ok := raw.(float64); ok {
				out[label] = int(seconds) / 60
				continue
			}
		}
		out[label] = raw
	}
	return out
}

func searchPayload(gameName string) map[string]any {
	return map[string]any{
		"searchType":  "games",
		"searchTerms": strings.Fields(gameName),
		"searchPage":  1,
		"size":        5,
		"searchOptions": map[string]any{
			"games": map[string]any{
				"userId":        0,
				"platform":      "",
				"sortCategory":  "popular",
				"rangeCategory": "main",
				"rangeTime":     map[string]any{"min": 0, "max": 0},
				"gameplay": map[string]any{
					"perspective": "",
					"flow":        "",
					"genre":       "",
					"difficulty":  "",
				},
				"rangeYear": map[string]any{"min": "", "max": ""},
				"modifier":  "",
			},
			"users":      map[string]any{"sortCategory": "postcount"},
			"lists":      map[string]any{"sortCategory": "follows"},
			"filter":     "",
			"sort":       0,
			"randomizer": 0,
		},
		"useCache": true,
	}
}
