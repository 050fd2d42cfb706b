package sources

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"
)

var steamReviewLabels = []string{
	"steam_appid",
	"review_score",
	"review_score_desc",
	"total_positive",
	"total_negative",
	"total_reviews",
}

// SteamReview serves the review-score summary for an appid. FetchReviews
// additionally returns the raw review listing for the review command.
type SteamReview struct {
	client  *resty.Client
	baseURL string
}

func NewSteamReview(client *resty.Client) *SteamReview {
	return &SteamReview{
		client:  client,
		baseURL: "https://store.steampowered.com",
	}
}

func (s *SteamReview) Name() string          { return "SteamReview" }
func (s *SteamReview) ValidLabels() []string { return steamReviewLabels }

func (s *SteamReview) Fetch(ctx context.Context, appid string, opts FetchOptions) Result {
	body, result := s.request(ctx, appid, "summary")
	if !result.Success {
		return result
	}

	summary, ok := body["query_summary"].(map[string]any)
	if !ok {
		return errorResult(s.Name(), "Failed to parse review summary for appid %s.", appid)
	}

	data := map[string]any{
		"steam_appid":       appid,
		"review_score":      summary["review_score"],
		"review_score_desc": summary["review_score_desc"],
		"total_positive":    summary["total_positive"],
		"total_negative":    summary["total_negative"],
		"total_reviews":     summary["total_reviews"],
	}
	return successResult(filterLabels(s.Name(), data, opts.SelectedLabels, steamReviewLabels))
}

// FetchReviews returns the full review payload: the summary plus the
// individual review entries of the most recent page.
func (s *SteamReview) FetchReviews(ctx context.Context, appid string) Result {
	body, result := s.request(ctx, appid, "recent")
	if !result.Success {
		return result
	}

	reviews, _ := body["reviews"].([]any)
	data := map[string]any{
		"steam_appid":   appid,
		"query_summary": body["query_summary"],
		"reviews":       reviews,
	}
	return successResult(data)
}

func (s *SteamReview) request(ctx context.Context, appid, filter string) (map[string]any, Result) {
	res, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"json":          "1",
			"filter":        filter,
			"language":      "all",
			"review_type":   "all",
			"purchase_type": "all",
		}).
		Get(s.baseURL + "/appreviews/" + appid)
	if err != nil {
		return nil, connectError(s.Name(), err)
	}
	if res.StatusCode() != 200 {
		return nil, errorResult(s.Name(), "Failed to fetch data with status code: %d.", res.StatusCode())
	}

	var body map[string]any
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return nil, errorResult(s.Name(), "Failed to parse SteamReview response for appid %s.", appid)
	}

	if success, ok := body["success"].(float64); !ok || success != 1 {
		return nil, errorResult(s.Name(), "Failed to fetch review data for appid %s.", appid)
	}
	return body, Result{Success: true}
}
