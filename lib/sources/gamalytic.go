package sources

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"
)

var gamalyticLabels = []string{
	"steam_appid",
	"average_playtime_h",
	"copies_sold",
	"estimated_revenue",
	"owners",
	"languages",
	"followers",
	"early_access",
}

// Gamalytic serves sales and ownership estimates for an appid.
type Gamalytic struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

func NewGamalytic(client *resty.Client, apiKey string) *Gamalytic {
	return &Gamalytic{
		client:  client,
		baseURL: "https://api.gamalytic.com",
		apiKey:  apiKey,
	}
}

func (g *Gamalytic) Name() string          { return "Gamalytic" }
func (g *Gamalytic) ValidLabels() []string { return gamalyticLabels }

func (g *Gamalytic) SetAPIKey(apiKey string) { g.apiKey = apiKey }

func (g *Gamalytic) Fetch(ctx context.Context, appid string, opts FetchOptions) Result {
	req := g.client.R().SetContext(ctx)
	if g.apiKey != "" {
		req.SetHeader("api-key", g.apiKey)
	}

	res, err := req.Get(g.baseURL + "/game/" + appid)
	if err != nil {
		return connectError(g.Name(), err)
	}
	if res.StatusCode() == 404 {
		return errorResult(g.Name(), "Game with appid %s is not found.", appid)
	}
	if res.StatusCode() != 200 {
		return errorResult(g.Name(), "Failed to fetch data with status code: %d.", res.StatusCode())
	}

	var body map[string]any
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return errorResult(g.Name(), "Failed to parse Gamalytic response for appid %s.", appid)
	}

	data := g.transform(body)
	data["steam_appid"] = appid
	return successResult(filterLabels(g.Name(), data, opts.SelectedLabels, gamalyticLabels))
}

func (g *Gamalytic) transform(data map[string]any) map[string]any {
	return map[string]any{
		"average_playtime_h": data["avgPlaytime"],
		"copies_sold":        data["copiesSold"],
		"estimated_revenue":  data["revenue"],
		"owners":             data["owners"],
		"languages":          data["languages"],
		"followers":          data["followers"],
		"early_access":       data["earlyAccess"],
	}
}
