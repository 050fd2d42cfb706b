package sources

import (
	"bytes"
	"context"

	"gameinsights-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

var steamChartsLabels = []string{
	"steam_appid",
	"name",
	"active_player_24h",
	"peak_active_player_all_time",
	"monthly_active_player",
}

// SteamCharts scrapes player-count statistics from the public charts page.
// There is no JSON API; the page structure is three headline stat blocks
// followed by a month-by-month table.
type SteamCharts struct {
	client  *resty.Client
	baseURL string
}

func NewSteamCharts(client *resty.Client) *SteamCharts {
	return &SteamCharts{
		client:  client,
		baseURL: "https://steamcharts.com",
	}
}

func (s *SteamCharts) Name() string          { return "SteamCharts" }
func (s *SteamCharts) ValidLabels() []string { return steamChartsLabels }

func (s *SteamCharts) Fetch(ctx context.Context, appid string, opts FetchOptions) Result {
	res, err := s.client.R().
		SetContext(ctx).
		Get(s.baseURL + "/app/" + appid)
	if err != nil {
		return connectError(s.Name(), err)
	}
	if res.StatusCode() == 404 {
		return errorResult(s.Name(), "Game with appid %s is not found on SteamCharts.", appid)
	}
	if res.StatusCode() != 200 {
		return errorResult(s.Name(), "Failed to fetch data with status code: %d.", res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return errorResult(s.Name(), "Failed to parse SteamCharts response for appid %s.", appid)
	}

	name := htmlutil.CleanText(doc.Find("#app-title").Text())
	if name == "" {
		return errorResult(s.Name(), "Failed to parse SteamCharts response for appid %s.", appid)
	}

	data := map[string]any{
		"steam_appid":                 appid,
		"name":                        name,
		"active_player_24h":           nil,
		"peak_active_player_all_time": nil,
		"monthly_active_player":       s.parseMonthlyTable(doc),
	}

	// headline stats: playing now, 24-hour peak, all-time peak
	stats := doc.Find("div.app-stat span.num")
	if peak24, err := htmlutil.ParseInt(stats.Eq(1).Text()); err == nil {
		data["active_player_24h"] = peak24
	}
	if peakAll, err := htmlutil.ParseInt(stats.Eq(2).Text()); err == nil {
		data["peak_active_player_all_time"] = peakAll
	}

	return successResult(filterLabels(s.Name(), data, opts.SelectedLabels, steamChartsLabels))
}

func (s *SteamCharts) parseMonthlyTable(doc *goquery.Document) []map[string]any {
	months := []map[string]any{}
	doc.Find("table.common-table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 5 {
			return
		}

		month := htmlutil.CleanText(cells.Eq(0).Text())
		if month == "" {
			return
		}

		entry := map[string]any{"month": month}
		if average, err := htmlutil.ParseFloat(cells.Eq(1).Text()); err == nil {
			entry["average_players"] = average
		}
		if gain, err := htmlutil.ParseFloat(cells.Eq(2).Text()); err == nil {
			entry["gain"] = gain
		}
		if peak, err := htmlutil.ParseInt(cells.Eq(4).Text()); err == nil {
			entry["peak_players"] = peak
		}
		months = append(months, entry)
	})
	return months
}
