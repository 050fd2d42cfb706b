package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestSteamAchievementsFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ISteamUserStats/GetGlobalAchievementPercentagesForApp/v2/", r.URL.Path)
		require.Equal(t, "12345", r.URL.Query().Get("gameid"))
		json.NewEncoder(w).Encode(map[string]any{
			"achievementpercentages": map[string]any{
				"achievements": []map[string]any{
					{"name": "FIRST_STEPS", "percent": 90.0},
					{"name": "FINISHED", "percent": 10.0},
				},
			},
		})
	}))
	defer server.Close()

	achievements := NewSteamAchievements(resty.New(), "")
	achievements.baseURL = server.URL

	result := achievements.Fetch(context.Background(), "12345", FetchOptions{})
	require.True(t, result.Success)
	require.Equal(t, 2, result.Data["achievements_count"])
	require.Equal(t, 50.0, result.Data["achievements_percentage_average"])

	list, ok := result.Data["achievements_list"].([]map[string]any)
	require.True(t, ok)
	require.Equal(t, "FIRST_STEPS", list[0]["name"])
}

func TestSteamAchievementsFetchEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"achievementpercentages": map[string]any{"achievements": []map[string]any{}},
		})
	}))
	defer server.Close()

	achievements := NewSteamAchievements(resty.New(), "")
	achievements.baseURL = server.URL

	result := achievements.Fetch(context.Background(), "99999", FetchOptions{})
	require.False(t, result.Success)
	require.Equal(t, "Achievements for appid 99999 are not found.", result.Error)
}
