// Package gamedata holds the unified record one collector fetch produces.
// Build applies field-level coercion so heterogeneous source payloads
// (strings, floats, scraped text) always land in one predictable shape.
package gamedata

import (
	"fmt"
	"time"
)

// Game is the merged record for one appid. Scalar fields are pointers so a
// source that failed (or never reported the field) stays distinguishable
// from a zero value.
type Game struct {
	SteamAppID string `json:"steam_appid"`

	Name            *string  `json:"name"`
	Developers      []string `json:"developers"`
	Publishers      []string `json:"publishers"`
	Type            *string  `json:"type"`
	IsFree          *bool    `json:"is_free"`
	IsComingSoon    *bool    `json:"is_coming_soon"`
	Recommendations *int     `json:"recommendations"`

	PriceCurrency *string  `json:"price_currency"`
	PriceInitial  *float64 `json:"price_initial"`
	PriceFinal    *float64 `json:"price_final"`
	Discount      *float64 `json:"-"`

	MetacriticScore  *int       `json:"metacritic_score"`
	ReleaseDate      *time.Time `json:"release_date"`
	DaysSinceRelease *int       `json:"days_since_release"`

	AveragePlaytimeH *float64 `json:"-"`
	AveragePlaytime  *int     `json:"average_playtime"`
	CopiesSold       *int     `json:"copies_sold"`
	EstimatedRevenue *int     `json:"estimated_revenue"`
	Owners           *int     `json:"owners"`
	Followers        *int     `json:"followers"`
	EarlyAccess      *bool    `json:"early_access"`

	CCU                      *int             `json:"ccu"`
	ActivePlayer24H          *int             `json:"active_player_24h"`
	PeakActivePlayerAllTime  *int             `json:"peak_active_player_all_time"`
	MonthlyActivePlayer      []map[string]any `json:"monthly_active_player"`

	ReviewScore     *int    `json:"review_score"`
	ReviewScoreDesc *string `json:"review_score_desc"`
	TotalPositive   *int    `json:"total_positive"`
	TotalNegative   *int    `json:"total_negative"`
	TotalReviews    *int    `json:"total_reviews"`

	AchievementsCount             *int             `json:"achievements_count"`
	AchievementsPercentageAverage *float64         `json:"achievements_percentage_average"`
	AchievementsList              []map[string]any `json:"achievements_list"`

	CompMain        *int `json:"comp_main"`
	CompPlus        *int `json:"comp_plus"`
	Comp100         *int `json:"comp_100"`
	CompAll         *int `json:"comp_all"`
	CompMainCount   *int `json:"comp_main_count"`
	CompPlusCount   *int `json:"comp_plus_count"`
	Comp100Count    *int `json:"comp_100_count"`
	CompAllCount    *int `json:"comp_all_count"`
	InvestedCo      *int `json:"invested_co"`
	InvestedMp      *int `json:"invested_mp"`
	InvestedCoCount *int `json:"invested_co_count"`
	InvestedMpCount *int `json:"invested_mp_count"`
	CountComp       *int `json:"count_comp"`
	CountSpeedRun   *int `json:"count_speed_run"`
	CountBacklog    *int `json:"count_backlog"`
	CountReview     *int `json:"count_review"`
	CountPlaying    *int `json:"count_playing"`
	CountRetired    *int `json:"count_retired"`

	Languages     []string         `json:"languages"`
	Platforms     []string         `json:"platforms"`
	Categories    []string         `json:"categories"`
	Genres        []string         `json:"genres"`
	Tags          []string         `json:"tags"`
	ContentRating []map[string]any `json:"content_rating"`

	ProtonDBTier       *string  `json:"protondb_tier"`
	ProtonDBScore      *float64 `json:"protondb_score"`
	ProtonDBTrending   *string  `json:"protondb_trending"`
	ProtonDBConfidence *string  `json:"protondb_confidence"`
	ProtonDBTotal      *int     `json:"protondb_total"`
}

// Build validates and coerces a raw merged field map into a Game. The only
// hard requirement is that the steam_appid key is present; every other field
// falls back to nil/empty when missing or uncoercible.
func Build(raw map[string]any) (*Game, error) {
	appidValue, ok := raw["steam_appid"]
	if !ok {
		return nil, fmt.Errorf("missing required field steam_appid")
	}

	g := &Game{
		SteamAppID: toRequiredString(appidValue),

		Name:            toString(raw["name"]),
		Developers:      toStringList(raw["developers"]),
		Publishers:      toStringList(raw["publishers"]),
		Type:            toString(raw["type"]),
		IsFree:          toBool(raw["is_free"]),
		IsComingSoon:    toBool(raw["is_coming_soon"]),
		Recommendations: toInt(raw["recommendations"]),

		PriceCurrency: toString(raw["price_currency"]),
		PriceInitial:  toFloat(raw["price_initial"]),
		PriceFinal:    toFloat(raw["price_final"]),
		Discount:      toFloat(raw["discount"]),

		MetacriticScore: toInt(raw["metacritic_score"]),
		ReleaseDate:     toDate(raw["release_date"]),

		AveragePlaytimeH: toFloat(raw["average_playtime_h"]),
		CopiesSold:       toInt(raw["copies_sold"]),
		EstimatedRevenue: toInt(raw["estimated_revenue"]),
		Owners:           toInt(raw["owners"]),
		Followers:        toInt(raw["followers"]),
		EarlyAccess:      toBool(raw["early_access"]),

		CCU:                     toInt(raw["ccu"]),
		ActivePlayer24H:         toInt(raw["active_player_24h"]),
		PeakActivePlayerAllTime: toInt(raw["peak_active_player_all_time"]),
		MonthlyActivePlayer:     toMapList(raw["monthly_active_player"]),

		ReviewScore:     toInt(raw["review_score"]),
		ReviewScoreDesc: toString(raw["review_score_desc"]),
		TotalPositive:   toInt(raw["total_positive"]),
		TotalNegative:   toInt(raw["total_negative"]),
		TotalReviews:    toInt(raw["total_reviews"]),

		AchievementsCount:             toInt(raw["achievements_count"]),
		AchievementsPercentageAverage: toFloat(raw["achievements_percentage_average"]),
		AchievementsList:              toMapList(raw["achievements_list"]),

		CompMain:        toInt(raw["comp_main"]),
		CompPlus:        toInt(raw["comp_plus"]),
		Comp100:         toInt(raw["comp_100"]),
		CompAll:         toInt(raw["comp_all"]),
		CompMainCount:   toInt(raw["comp_main_count"]),
		CompPlusCount:   toInt(raw["comp_plus_count"]),
		Comp100Count:    toInt(raw["comp_100_count"]),
		CompAllCount:    toInt(raw["comp_all_count"]),
		InvestedCo:      toInt(raw["invested_co"]),
		InvestedMp:      toInt(raw["invested_mp"]),
		InvestedCoCount: toInt(raw["invested_co_count"]),
		InvestedMpCount: toInt(raw["invested_mp_count"]),
		CountComp:       toInt(raw["count_comp"]),
		CountSpeedRun:   toInt(raw["count_speed_run"]),
		CountBacklog:    toInt(raw["count_backlog"]),
		CountReview:     toInt(raw["count_review"]),
		CountPlaying:    toInt(raw["count_playing"]),
		CountRetired:    toInt(raw["count_retired"]),

		Languages:     toStringList(raw["languages"]),
		Platforms:     toStringList(raw["platforms"]),
		Categories:    toStringList(raw["categories"]),
		Genres:        toStringList(raw["genres"]),
		Tags:          toStringList(raw["tags"]),
		ContentRating: toMapList(raw["content_rating"]),

		ProtonDBTier:       toString(raw["protondb_tier"]),
		ProtonDBScore:      toFloat(raw["protondb_score"]),
		ProtonDBTrending:   toString(raw["protondb_trending"]),
		ProtonDBConfidence: toString(raw["protondb_confidence"]),
		ProtonDBTotal:      toInt(raw["protondb_total"]),
	}

	if g.AveragePlaytimeH != nil {
		seconds := int(*g.AveragePlaytimeH * 3600)
		g.AveragePlaytime = &seconds
	}
	if g.ReleaseDate != nil {
		days := int(time.Since(*g.ReleaseDate).Hours() / 24)
		g.DaysSinceRelease = &days
	}

	return g, nil
}
