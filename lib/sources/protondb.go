package sources

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"
)

var protonDBLabels = []string{
	"steam_appid",
	"protondb_tier",
	"protondb_score",
	"protondb_trending",
	"protondb_confidence",
	"protondb_total",
}

// ProtonDB serves Linux/Steam Deck compatibility report summaries. Tiers
// run pending, bronze, silver, gold, platinum.
type ProtonDB struct {
	client  *resty.Client
	baseURL string
}

func NewProtonDB(client *resty.Client) *ProtonDB {
	return &ProtonDB{
		client:  client,
		baseURL: "https://www.protondb.com",
	}
}

func (p *ProtonDB) Name() string          { return "ProtonDB" }
func (p *ProtonDB) ValidLabels() []string { return protonDBLabels }

func (p *ProtonDB) Fetch(ctx context.Context, appid string, opts FetchOptions) Result {
	res, err := p.client.R().
		SetContext(ctx).
		Get(p.baseURL + "/api/v1/reports/summaries/" + appid + ".json")
	if err != nil {
		return connectError(p.Name(), err)
	}
	if res.StatusCode() == 404 {
		return errorResult(p.Name(), "Game %s not found on ProtonDB.", appid)
	}
	if res.StatusCode() != 200 {
		return errorResult(p.Name(), "Failed to fetch data with status code: %d.", res.StatusCode())
	}

	var summary map[string]any
	if err := json.Unmarshal(res.Body(), &summary); err != nil {
		return errorResult(p.Name(), "Failed to parse ProtonDB response for game %s.", appid)
	}

	data := p.transform(summary)
	data["steam_appid"] = appid
	return successResult(filterLabels(p.Name(), data, opts.SelectedLabels, protonDBLabels))
}

func (p *ProtonDB) transform(data map[string]any) map[string]any {
	return map[string]any{
		"protondb_tier":       data["tier"],
		"protondb_score":      data["score"],
		"protondb_trending":   data["trendingTier"],
		"protondb_confidence": data["confidence"],
		"protondb_total":      data["total"],
	}
}
