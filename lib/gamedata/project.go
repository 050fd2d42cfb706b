package gamedata

import "time"

// recapFields is the reduced field set used for compact listings.
var recapFields = map[string]bool{
	"steam_appid":                     true,
	"name":                            true,
	"developers":                      true,
	"publishers":                      true,
	"type":                            true,
	"release_date":                    true,
	"days_since_release":              true,
	"price_currency":                  true,
	"price_initial":                   true,
	"price_final":                     true,
	"copies_sold":                     true,
	"estimated_revenue":               true,
	"owners":                          true,
	"followers":                       true,
	"total_positive":                  true,
	"total_negative":                  true,
	"total_reviews":                   true,
	"comp_main":                       true,
	"comp_plus":                       true,
	"comp_100":                        true,
	"comp_all":                        true,
	"invested_co":                     true,
	"invested_mp":                     true,
	"average_playtime":                true,
	"active_player_24h":               true,
	"peak_active_player_all_time":     true,
	"achievements_count":              true,
	"achievements_percentage_average": true,
	"categories":                      true,
	"genres":                          true,
	"tags":                            true,
	"is_free":                         true,
	"protondb_tier":                   true,
	"early_access":                    true,
	"metacritic_score":                true,
}

// Map renders the record as a JSON-safe map: dates become ISO 8601 strings
// and unset pointers become explicit nils. Intermediate working fields
// (discount, the hour-based playtime) are not part of the projection.
func (g *Game) Map() map[string]any {
	return map[string]any{
		"steam_appid":                     g.SteamAppID,
		"name":                            strValue(g.Name),
		"developers":                      g.Developers,
		"publishers":                      g.Publishers,
		"type":                            strValue(g.Type),
		"is_free":                         boolValue(g.IsFree),
		"is_coming_soon":                  boolValue(g.IsComingSoon),
		"recommendations":                 intValue(g.Recommendations),
		"price_currency":                  strValue(g.PriceCurrency),
		"price_initial":                   floatValue(g.PriceInitial),
		"price_final":                     floatValue(g.PriceFinal),
		"metacritic_score":                intValue(g.MetacriticScore),
		"release_date":                    isoDate(g.ReleaseDate),
		"days_since_release":              intValue(g.DaysSinceRelease),
		"average_playtime":                intValue(g.AveragePlaytime),
		"copies_sold":                     intValue(g.CopiesSold),
		"estimated_revenue":               intValue(g.EstimatedRevenue),
		"owners":                          intValue(g.Owners),
		"followers":                       intValue(g.Followers),
		"early_access":                    boolValue(g.EarlyAccess),
		"ccu":                             intValue(g.CCU),
		"active_player_24h":               intValue(g.ActivePlayer24H),
		"peak_active_player_all_time":     intValue(g.PeakActivePlayerAllTime),
		"monthly_active_player":           g.MonthlyActivePlayer,
		"review_score":                    intValue(g.ReviewScore),
		"review_score_desc":               strValue(g.ReviewScoreDesc),
		"total_positive":                  intValue(g.TotalPositive),
		"total_negative":                  intValue(g.TotalNegative),
		"total_reviews":                   intValue(g.TotalReviews),
		"achievements_count":              intValue(g.AchievementsCount),
		"achievements_percentage_average": floatValue(g.AchievementsPercentageAverage),
		"achievements_list":               g.AchievementsList,
		"comp_main":                       intValue(g.CompMain),
		"comp_plus":                       intValue(g.CompPlus),
		"comp_100":                        intValue(g.Comp100),
		"comp_all":                        intValue(g.CompAll),
		"comp_main_count":                 intValue(g.CompMainCount),
		"comp_plus_count":                 intValue(g.CompPlusCount),
		"comp_100_count":                  intValue(g.Comp100Count),
		"comp_all_count":                  intValue(g.CompAllCount),
		"invested_co":                     intValue(g.InvestedCo),
		"invested_mp":                     intValue(g.InvestedMp),
		"invested_co_count":               intValue(g.InvestedCoCount),
		"invested_mp_count":               intValue(g.InvestedMpCount),
		"count_comp":                      intValue(g.CountComp),
		"count_speed_run":                 intValue(g.CountSpeedRun),
		"count_backlog":                   intValue(g.CountBacklog),
		"count_review":                    intValue(g.CountReview),
		"count_playing":                   intValue(g.CountPlaying),
		"count_retired":                   intValue(g.CountRetired),
		"languages":                       g.Languages,
		"platforms":                       g.Platforms,
		"categories":                      g.Categories,
		"genres":                          g.Genres,
		"tags":                            g.Tags,
		"content_rating":                  g.ContentRating,
		"protondb_tier":                   strValue(g.ProtonDBTier),
		"protondb_score":                  floatValue(g.ProtonDBScore),
		"protondb_trending":               strValue(g.ProtonDBTrending),
		"protondb_confidence":             strValue(g.ProtonDBConfidence),
		"protondb_total":                  intValue(g.ProtonDBTotal),
	}
}

// Recap reduces Map to the recap field set.
func (g *Game) Recap() map[string]any {
	full := g.Map()
	out := make(map[string]any, len(recapFields))
	for field := range recapFields {
		out[field] = full[field]
	}
	return out
}

func isoDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02T15:04:05")
}

func strValue(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolValue(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}

func intValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatValue(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
