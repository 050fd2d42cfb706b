package sources

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/go-resty/resty/v2"
)

var steamSpyLabels = []string{
	"steam_appid",
	"ccu",
	"tags",
	"discount",
}

// SteamSpy serves concurrent-user counts, community tags and the current
// discount percentage.
type SteamSpy struct {
	client  *resty.Client
	baseURL string
}

func NewSteamSpy(client *resty.Client) *SteamSpy {
	return &SteamSpy{
		client:  client,
		baseURL: "https://steamspy.com",
	}
}

func (s *SteamSpy) Name() string          { return "SteamSpy" }
func (s *SteamSpy) ValidLabels() []string { return steamSpyLabels }

func (s *SteamSpy) Fetch(ctx context.Context, appid string, opts FetchOptions) Result {
	res, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"request": "appdetails",
			"appid":   appid,
		}).
		Get(s.baseURL + "/api.php")
	if err != nil {
		return connectError(s.Name(), err)
	}
	if res.StatusCode() != 200 {
		return errorResult(s.Name(), "Failed to fetch data with status code: %d.", res.StatusCode())
	}

	var body map[string]any
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return errorResult(s.Name(), "Failed to parse SteamSpy response for appid %s.", appid)
	}

	// SteamSpy answers 200 with a null name for unknown appids.
	if body["name"] == nil {
		return errorResult(s.Name(), "Game with appid %s is not found on SteamSpy.", appid)
	}

	data := s.transform(body)
	data["steam_appid"] = appid
	return successResult(filterLabels(s.Name(), data, opts.SelectedLabels, steamSpyLabels))
}

func (s *SteamSpy) transform(data map[string]any) map[string]any {
	return map[string]any{
		"ccu":      data["ccu"],
		"tags":     tagsByVotes(data["tags"]),
		"discount": data["discount"],
	}
}

// tagsByVotes flattens the {"tag": votes} map into a list of tag names,
// most-voted first. Vote ties break alphabetically to stay deterministic.
func tagsByVotes(value any) []string {
	votes, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	tags := make([]string, 0, len(votes))
	for tag := range votes {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		left, _ := votes[tags[i]].(float64)
		right, _ := votes[tags[j]].(float64)
		if left != right {
			return left > right
		}
		return tags[i] < tags[j]
	})
	return tags
}
