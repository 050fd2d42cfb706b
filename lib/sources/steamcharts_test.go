package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

const chartsPage = `<!DOCTYPE html>
<html>
<body>
	<div id="app-title"><a href="/app/12345">Mock Game</a></div>
	<div class="app-stat"><span class="num">1,024</span><br>playing now</div>
	<div class="app-stat"><span class="num">2,048</span><br>24-hour peak</div>
	<div class="app-stat"><span class="num">10,000</span><br>all-time peak</div>
	<table class="common-table">
		<tbody>
			<tr>
				<td class="month-cell left">July 2025</td>
				<td class="right num-f italic">99.0</td>
				<td class="right num-p gainorloss italic">-21.5</td>
				<td class="right num-p gainorloss italic">-17.8%</td>
				<td class="right num italic">300</td>
			</tr>
			<tr>
				<td class="month-cell left">June 2025</td>
				<td class="right num-f italic">120.5</td>
				<td class="right num-p gainorloss italic">&nbsp;</td>
				<td class="right num-p gainorloss italic">&nbsp;</td>
				<td class="right num italic">450</td>
			</tr>
		</tbody>
	</table>
</body>
</html>`

func TestSteamChartsFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/app/12345", r.URL.Path)
		w.Write([]byte(chartsPage))
	}))
	defer server.Close()

	charts := NewSteamCharts(resty.New())
	charts.baseURL = server.URL

	result := charts.Fetch(context.Background(), "12345", FetchOptions{})
	require.True(t, result.Success)

	require.Equal(t, "Mock Game", result.Data["name"])
	require.Equal(t, 2048, result.Data["active_player_24h"])
	require.Equal(t, 10000, result.Data["peak_active_player_all_time"])

	monthly, ok := result.Data["monthly_active_player"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, monthly, 2)
	require.Equal(t, "July 2025", monthly[0]["month"])
	require.Equal(t, 99.0, monthly[0]["average_players"])
	require.Equal(t, -21.5, monthly[0]["gain"])
	require.Equal(t, 300, monthly[0]["peak_players"])

	// blank gain cells just leave the key out
	require.Equal(t, "June 2025", monthly[1]["month"])
	require.NotContains(t, monthly[1], "gain")
}

func TestSteamChartsFetchMissingTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>nothing here</p></body></html>"))
	}))
	defer server.Close()

	charts := NewSteamCharts(resty.New())
	charts.baseURL = server.URL

	result := charts.Fetch(context.Background(), "12345", FetchOptions{})
	require.False(t, result.Success)
	require.Equal(t, "Failed to parse SteamCharts response for appid 12345.", result.Error)
}

func TestSteamChartsFetchNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	charts := NewSteamCharts(resty.New())
	charts.baseURL = server.URL

	result := charts.Fetch(context.Background(), "99999", FetchOptions{})
	require.False(t, result.Success)
	require.Equal(t, "Game with appid 99999 is not found on SteamCharts.", result.Error)
}
