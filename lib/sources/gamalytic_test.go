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

func TestGamalyticFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/game/12345", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("api-key"))
		json.NewEncoder(w).Encode(map[string]any{
			"avgPlaytime": 2.5,
			"copiesSold":  100000,
			"revenue":     1234567,
			"owners":      250000,
			"languages":   []string{"English", "German"},
			"followers":   4321,
			"earlyAccess": false,
		})
	}))
	defer server.Close()

	gamalytic := NewGamalytic(resty.New(), "test-key")
	gamalytic.baseURL = server.URL

	result := gamalytic.Fetch(context.Background(), "12345", FetchOptions{})
	require.True(t, result.Success)
	require.Equal(t, 2.5, result.Data["average_playtime_h"])
	require.Equal(t, float64(100000), result.Data["copies_sold"])
	require.Equal(t, float64(1234567), result.Data["estimated_revenue"])
	require.Equal(t, float64(250000), result.Data["owners"])
	require.Equal(t, false, result.Data["early_access"])
}

func TestGamalyticFetchNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	gamalytic := NewGamalytic(resty.New(), "")
	gamalytic.baseURL = server.URL

	result := gamalytic.Fetch(context.Background(), "99999", FetchOptions{})
	require.False(t, result.Success)
	require.Equal(t, "Game with appid 99999 is not found.", result.Error)
}
