package sources

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"
)

var steamUserLabels = []string{
	"steamid",
	"persona_name",
	"profile_url",
	"country_code",
	"game_count",
	"games",
}

// SteamUser serves public profile data and the owned-games library for a
// 64-bit steamid. It is the only source that requires an API key.
type SteamUser struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

func NewSteamUser(client *resty.Client, apiKey string) *SteamUser {
	return &SteamUser{
		client:  client,
		baseURL: "https://api.steampowered.com",
		apiKey:  apiKey,
	}
}

func (s *SteamUser) Name() string          { return "SteamUser" }
func (s *SteamUser) ValidLabels() []string { return steamUserLabels }

func (s *SteamUser) SetAPIKey(apiKey string) { s.apiKey = apiKey }

func (s *SteamUser) Fetch(ctx context.Context, steamid string, opts FetchOptions) Result {
	if s.apiKey == "" {
		return errorResult(s.Name(), "Failed to fetch user data: a Steam API key is required.")
	}

	profile, result := s.fetchProfile(ctx, steamid)
	if !result.Success {
		return result
	}

	data := map[string]any{
		"steamid":      steamid,
		"persona_name": profile["personaname"],
		"profile_url":  profile["profileurl"],
		"country_code": profile["loccountrycode"],
		"game_count":   nil,
		"games":        []map[string]any{},
	}

	// The library is optional profile data; a private library still counts
	// as a successful user fetch.
	gameCount, games, ok := s.fetchOwnedGames(ctx, steamid, opts.IncludeFreeGames)
	if ok {
		data["game_count"] = gameCount
		data["games"] = games
	}

	return successResult(filterLabels(s.Name(), data, opts.SelectedLabels, steamUserLabels))
}

func (s *SteamUser) fetchProfile(ctx context.Context, steamid string) (map[string]any, Result) {
	res, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":      s.apiKey,
			"steamids": steamid,
		}).
		Get(s.baseURL + "/ISteamUser/GetPlayerSummaries/v2/")
	if err != nil {
		return nil, connectError(s.Name(), err)
	}
	if res.StatusCode() != 200 {
		return nil, errorResult(s.Name(), "Failed to fetch data with status code: %d.", res.StatusCode())
	}

	var body struct {
		Response struct {
			Players []map[string]any `json:"players"`
		} `json:"response"`
	}
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return nil, errorResult(s.Name(), "Failed to parse SteamUser response for steamid %s.", steamid)
	}
	if len(body.Response.Players) == 0 {
		return nil, errorResult(s.Name(), "User with steamid %s is not found.", steamid)
	}
	return body.Response.Players[0], Result{Success: true}
}

func (s *SteamUser) fetchOwnedGames(ctx context.Context, steamid string, includeFree bool) (any, []map[string]any, bool) {
	params := map[string]string{
		"key":             s.apiKey,
		"steamid":         steamid,
		"include_appinfo": "1",
	}
	if includeFree {
		params["include_played_free_games"] = "1"
	}

	res, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(s.baseURL + "/IPlayerService/GetOwnedGames/v1/")
	if err != nil || res.StatusCode() != 200 {
		return nil, nil, false
	}

	var body struct {
		Response struct {
			GameCount *int `json:"game_count"`
			Games     []struct {
				AppID           int    `json:"appid"`
				Name            string `json:"name"`
				PlaytimeForever int    `json:"playtime_forever"`
			} `json:"games"`
		} `json:"response"`
	}
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return nil, nil, false
	}
	if body.Response.GameCount == nil {
		return nil, nil, false
	}

	games := make([]map[string]any, 0, len(body.Response.Games))
	for _, game := range body.Response.Games {
		games = append(games, map[string]any{
			"appid":              game.AppID,
			"name":               game.Name,
			"playtime_forever_h": float64(game.PlaytimeForever) / 60,
		})
	}
	return *body.Response.GameCount, games, true
}
