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

func TestProtonDBFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/reports/summaries/12345.json", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"tier":         "gold",
			"score":        0.82,
			"trendingTier": "platinum",
			"confidence":   "strong",
			"total":        412,
		})
	}))
	defer server.Close()

	protondb := NewProtonDB(resty.New())
	protondb.baseURL = server.URL

	result := protondb.Fetch(context.Background(), "12345", FetchOptions{})
	require.True(t, result.Success)
	require.Equal(t, "gold", result.Data["protondb_tier"])
	require.Equal(t, 0.82, result.Data["protondb_score"])
	require.Equal(t, "platinum", result.Data["protondb_trending"])
	require.Equal(t, "strong", result.Data["protondb_confidence"])
	require.Equal(t, float64(412), result.Data["protondb_total"])
}

func TestProtonDBFetchNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	protondb := NewProtonDB(resty.New())
	protondb.baseURL = server.URL

	result := protondb.Fetch(context.Background(), "99999", FetchOptions{})
	require.False(t, result.Success)
	require.Equal(t, "Game 99999 not found on ProtonDB.", result.Error)
}
