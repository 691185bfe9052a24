package listing

import "strings"

const (
	SortRating     = "rating"
	SortReviews    = "reviews"
	SortRecent     = "recent"
	SortNewest     = "newest"
	SortVerified   = "verified"
	SortName       = "name"
	SortPriceLow   = "price_low"
	SortPriceHigh  = "price_high"
	SortExperience = "experience"
	SortOnline     = "online"
)

const (
	defaultOrder       = "rating_average DESC, rating_count DESC"
	talentDefaultOrder = "rating_average DESC, verified DESC"
)

var providerOrders = map[string]string{
	SortRating:     defaultOrder,
	SortReviews:    "rating_count DESC, rating_average DESC",
	SortRecent:     "created_at DESC",
	SortNewest:     "created_at DESC",
	SortVerified:   "verification_is_verified DESC, rating_average DESC",
	SortName:       "name ASC",
	SortPriceLow:   "min_price ASC NULLS LAST",
	SortPriceHigh:  "min_price DESC NULLS LAST",
	SortExperience: "stats_completed_jobs DESC, rating_average DESC",
	SortOnline:     "is_online DESC, last_seen DESC",
}

var talentOrders = map[string]string{
	SortRating:   talentDefaultOrder,
	SortReviews:  "rating_count DESC, rating_average DESC",
	SortRecent:   "created_at DESC",
	SortNewest:   "created_at DESC",
	SortVerified: "verified DESC, rating_average DESC",
	SortName:     "name ASC",
}

// ProviderOrder возвращает ORDER BY; неизвестный ключ - по рейтингу
func ProviderOrder(key string) string {
	return orderFor(providerOrders, key, defaultOrder)
}

func TalentOrder(key string) string {
	return orderFor(talentOrders, key, talentDefaultOrder)
}

// normalizeSort: "Price-Low" -> "price_low"
func normalizeSort(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

func orderFor(orders map[string]string, key, fallback string) string {
	if o, ok := orders[normalizeSort(key)]; ok {
		return o
	}
	return fallback
}
