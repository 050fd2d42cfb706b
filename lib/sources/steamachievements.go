package sources

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"
)

var steamAchievementsLabels = []string{
	"steam_appid",
	"achievements_count",
	"achievements_percentage_average",
	"achievements_list",
}

// SteamAchievements serves the global achievement completion percentages.
type SteamAchievements struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

func NewSteamAchievements(client *resty.Client, apiKey string) *SteamAchievements {
	return &SteamAchievements{
		client:  client,
		baseURL: "https://api.steampowered.com",
		apiKey:  apiKey,
	}
}

func (s *SteamAchievements) Name() string          { return "SteamAchievements" }
func (s *SteamAchievements) ValidLabels() []string { return steamAchievementsLabels }

func (s *SteamAchievements) SetAPIKey(apiKey string) { s.apiKey = apiKey }

func (s *SteamAchievements) Fetch(ctx context.Context, appid string, opts FetchOptions) Result {
	req := s.client.R().
		SetContext(ctx).
		SetQueryParam("gameid", appid)
	if s.apiKey != "" {
		req.SetQueryParam("key", s.apiKey)
	}

	res, err := req.Get(s.baseURL + "/ISteamUserStats/GetGlobalAchievementPercentagesForApp/v2/")
	if err != nil {
		return connectError(s.Name(), err)
	}
	if res.StatusCode() != 200 {
		return errorResult(s.Name(), "Failed to fetch data with status code: %d.", res.StatusCode())
	}

	var body struct {
		AchievementPercentages struct {
			Achievements []struct {
				Name    string  `json:"name"`
				Percent float64 `json:"percent"`
			} `json:"achievements"`
		} `json:"achievementpercentages"`
	}
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return errorResult(s.Name(), "Failed to parse SteamAchievements response for appid %s.", appid)
	}

	achievements := body.AchievementPercentages.Achievements
	if len(achievements) == 0 {
		return errorResult(s.Name(), "Achievements for appid %s are not found.", appid)
	}

	list := make([]map[string]any, 0, len(achievements))
	var total float64
	for _, achievement := range achievements {
		list = append(list, map[string]any{
			"name":    achievement.Name,
			"percent": achievement.Percent,
		})
		total += achievement.Percent
	}

	data := map[string]any{
		"steam_appid":                     appid,
		"achievements_count":              len(achievements),
		"achievements_percentage_average": total / float64(len(achievements)),
		"achievements_list":               list,
	}
	return successResult(filterLabels(s.Name(), data, opts.SelectedLabels, steamAchievementsLabels))
}
