package sources

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/go-resty/resty/v2"
)

var steamStoreLabels = []string{
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
}

// SteamStore is the primary source: it is the existence oracle for an appid.
// Its failure message for unknown or region-locked appids is load-bearing,
// the collector's classifier maps it to a not-found error.
type SteamStore struct {
	client   *resty.Client
	baseURL  string
	region   string
	language string
	apiKey   string
}

func NewSteamStore(client *resty.Client, region, language, apiKey string) *SteamStore {
	return &SteamStore{
		client:   client,
		baseURL:  "https://store.steampowered.com",
		region:   region,
		language: language,
		apiKey:   apiKey,
	}
}

func (s *SteamStore) Name() string          { return "SteamStore" }
func (s *SteamStore) ValidLabels() []string { return steamStoreLabels }

func (s *SteamStore) SetRegion(region string)     { s.region = region }
func (s *SteamStore) SetLanguage(language string) { s.language = language }
func (s *SteamStore) SetAPIKey(apiKey string)     { s.apiKey = apiKey }

func (s *SteamStore) Fetch(ctx context.Context, appid string, opts FetchOptions) Result {
	req := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"appids": appid,
			"cc":     s.region,
			"l":      s.language,
		})
	if s.apiKey != "" {
		req.SetQueryParam("key", s.apiKey)
	}

	res, err := req.Get(s.baseURL + "/api/appdetails")
	if err != nil {
		return connectError(s.Name(), err)
	}
	if res.StatusCode() != 200 {
		return errorResult(s.Name(), "Failed to fetch data with status code: %d.", res.StatusCode())
	}

	var body map[string]struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return errorResult(s.Name(), "Failed to parse SteamStore response for appid %s.", appid)
	}

	entry, ok := body[appid]
	if !ok || !entry.Success || entry.Data == nil {
		return errorResult(
			s.Name(),
			"Failed to fetch data for appid %s, or appid %s is not available in the specified region (%s) or language (%s).",
			appid, appid, s.region, s.language,
		)
	}

	data := s.transform(entry.Data)
	data["steam_appid"] = appid
	return successResult(filterLabels(s.Name(), data, opts.SelectedLabels, steamStoreLabels))
}

func (s *SteamStore) transform(data map[string]any) map[string]any {
	out := map[string]any{
		"name":             data["name"],
		"developers":       data["developers"],
		"publishers":       data["publishers"],
		"type":             data["type"],
		"is_free":          data["is_free"],
		"price_currency":   nil,
		"price_initial":    nil,
		"price_final":      nil,
		"categories":       descriptions(data["categories"]),
		"platforms":        enabledPlatforms(data["platforms"]),
		"genres":           descriptions(data["genres"]),
		"metacritic_score": nil,
		"release_date":     nil,
		"is_coming_soon":   nil,
		"content_rating":   contentRatings(data["ratings"]),
		"recommendations":  nil,
	}

	if price, ok := data["price_overview"].(map[string]any); ok {
		out["price_currency"] = price["currency"]
		out["price_initial"] = centsToUnits(price["initial"])
		out["price_final"] = centsToUnits(price["final"])
	}
	if metacritic, ok := data["metacritic"].(map[string]any); ok {
		out["metacritic_score"] = metacritic["score"]
	}
	if release, ok := data["release_date"].(map[string]any); ok {
		out["release_date"] = release["date"]
		out["is_coming_soon"] = release["coming_soon"]
	}
	if recommendations, ok := data["recommendations"].(map[string]any); ok {
		out["recommendations"] = recommendations["total"]
	}
	return out
}

// descriptions flattens Steam's [{"id": ..., "description": ...}] shape into
// a plain list of description strings.
func descriptions(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if description, ok := entry["description"].(string); ok {
			out = append(out, description)
		}
	}
	return out
}

func enabledPlatforms(value any) []string {
	flags, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	var out []string
	for platform, enabled := range flags {
		if enabled == true {
			out = append(out, platform)
		}
	}
	sort.Strings(out)
	return out
}

func contentRatings(value any) []map[string]any {
	agencies, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(agencies))
	for name := range agencies {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []map[string]any
	for _, name := range names {
		entry, ok := agencies[name].(map[string]any)
		if !ok {
			continue
		}
		rating := map[string]any{"agency": name}
		for key, value := range entry {
			rating[key] = value
		}
		out = append(out, rating)
	}
	return out
}

func centsToUnits(value any) any {
	cents, ok := value.(float64)
	if !ok {
		return nil
	}
	return cents / 100
}
