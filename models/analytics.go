// api/models/analytics.go
package models

import "time"

// CategoryCount is one row of the popular-categories ranking.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// DailyInteraction is one calendar day's interaction counts.
type DailyInteraction struct {
	Date      string `json:"date"` // YYYY-MM-DD, UTC
	Views     int    `json:"views"`
	CartAdds  int    `json:"cart_adds"`
	Purchases int    `json:"purchases"`
	Total     int    `json:"total"`
}

// InteractionTypeTrend is one day of the per-type trend series.
type InteractionTypeTrend struct {
	Date     string `json:"date"` // YYYY-MM-DD, UTC
	View     int    `json:"view"`
	CartAdd  int    `json:"cart_add"`
	Purchase int    `json:"purchase"`
}

// AnalyticsSnapshot is the full admin dashboard aggregate, recomputed on
// every request from the raw event history.
type AnalyticsSnapshot struct {
	GeneratedAt          time.Time              `json:"generated_at"`
	TotalUsers           int                    `json:"total_users"`
	TotalInteractions    int                    `json:"total_interactions"`
	TotalViews           int                    `json:"total_views"`
	TotalCartAdds        int                    `json:"total_cart_adds"`
	TotalPurchases       int                    `json:"total_purchases"`
	PopularCategories    []CategoryCount        `json:"popular_categories"`
	RecentInteractions   []InteractionEvent     `json:"recent_interactions"`
	DailyInteractions    []DailyInteraction     `json:"daily_interactions"`
	InteractionTypesTrend []InteractionTypeTrend `json:"interaction_types_trend"`
}
