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

func reviewPayload() map[string]any {
	return map[string]any{
		"success": 1,
		"query_summary": map[string]any{
			"review_score":      8,
			"review_score_desc": "Very Positive",
			"total_positive":    4000,
			"total_negative":    321,
			"total_reviews":     4321,
		},
		"reviews": []map[string]any{
			{"recommendationid": "1", "voted_up": true},
		},
	}
}

func TestSteamReviewFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/appreviews/12345", r.URL.Path)
		require.Equal(t, "1", r.URL.Query().Get("json"))
		json.NewEncoder(w).Encode(reviewPayload())
	}))
	defer server.Close()

	review := NewSteamReview(resty.New())
	review.baseURL = server.URL

	result := review.Fetch(context.Background(), "12345", FetchOptions{})
	require.True(t, result.Success)
	require.Equal(t, float64(8), result.Data["review_score"])
	require.Equal(t, "Very Positive", result.Data["review_score_desc"])
	require.Equal(t, float64(4321), result.Data["total_reviews"])
}

func TestSteamReviewFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": 2})
	}))
	defer server.Close()

	review := NewSteamReview(resty.New())
	review.baseURL = server.URL

	result := review.Fetch(context.Background(), "12345", FetchOptions{})
	require.False(t, result.Success)
	require.Equal(t, "Failed to fetch review data for appid 12345.", result.Error)
}

func TestSteamReviewFetchReviews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "recent", r.URL.Query().Get("filter"))
		json.NewEncoder(w).Encode(reviewPayload())
	}))
	defer server.Close()

	review := NewSteamReview(resty.New())
	review.baseURL = server.URL

	result := review.FetchReviews(context.Background(), "12345")
	require.True(t, result.Success)
	require.Contains(t, result.Data, "query_summary")

	reviews, ok := result.Data["reviews"].([]any)
	require.True(t, ok)
	require.Len(t, reviews, 1)
}
