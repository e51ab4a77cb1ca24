// api/models/recommendation.go
package models

// Recommendation is a derived, per-request suggestion for a user. It is
// recomputed on every call and never persisted.
type Recommendation struct {
	ProductID int     `json:"product_id"`
	Score     float64 `json:"score"`
	Reason    string  `json:"reason"`
}

// RecommendedProduct pairs a recommendation with the catalog product it
// refers to, for direct rendering by the storefront.
type RecommendedProduct struct {
	Recommendation
	Product Product `json:"product"`
}
