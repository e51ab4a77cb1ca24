// api/engine/recommender.go
package engine

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"shopsense/api/models"
	"shopsense/api/store"
)

const (
	historyLookback = 90 * 24 * time.Hour
	recencyHalfLife = 14 * 24 * time.Hour

	weightView     = 1.0
	weightCartAdd  = 2.0
	weightPurchase = 3.0

	topCategoryCount = 3

	affinityBlend   = 0.6
	popularityBlend = 0.4
)

// Recommender derives per-user product recommendations from the user's
// interaction history and the catalog. Output is recomputed on every call
// and never persisted.
type Recommender struct {
	events  store.EventStore
	catalog ProductSource

	now func() time.Time
}

func NewRecommender(events store.EventStore, catalog ProductSource) *Recommender {
	return &Recommender{
		events:  events,
		catalog: catalog,
		now:     time.Now,
	}
}

// Recommend returns up to limit scored recommendations for the user, best
// first. A user with no recorded history gets an empty result, which the
// storefront uses to suppress the recommendation section entirely. Store
// and catalog failures also degrade to empty: recommendations are an
// enhancement, not a critical path.
func (r *Recommender) Recommend(ctx context.Context, userID string, limit int) []models.Recommendation {
	if userID == "" || limit <= 0 {
		return nil
	}

	now := r.now().UTC()
	history, err := r.events.QueryEvents(ctx, store.EventQuery{
		UserID: userID,
		Since:  now.Add(-historyLookback),
	})
	if err != nil {
		log.Printf("Recommendations degraded to empty for user %s: %v", userID, err)
		return nil
	}
	if len(history) == 0 {
		return nil
	}

	affinity, purchased := summarizeHistory(history, now)
	topCategories := topAffinityCategories(affinity, topCategoryCount)
	if len(topCategories) == 0 {
		return nil
	}

	candidates, err := r.catalog.ProductsInCategories(ctx, topCategories)
	if err != nil {
		log.Printf("Recommendations degraded to empty for user %s: %v", userID, err)
		return nil
	}

	return rankCandidates(candidates, affinity, purchased, limit)
}

// summarizeHistory reduces a user's events into recency-weighted category
// affinities and the set of already-purchased product ids.
func summarizeHistory(history []models.InteractionEvent, now time.Time) (map[string]float64, map[int]bool) {
	affinity := make(map[string]float64)
	purchased := make(map[int]bool)

	for _, event := range history {
		weight := interactionWeight(event.InteractionType)
		decay := recencyDecay(now.Sub(event.CreatedAt))
		if event.Category != "" {
			affinity[event.Category] += weight * decay
		}
		if event.InteractionType == models.InteractionPurchase {
			purchased[event.ProductID] = true
		}
	}

	return affinity, purchased
}

func interactionWeight(t models.InteractionType) float64 {
	switch t {
	case models.InteractionPurchase:
		return weightPurchase
	case models.InteractionCartAdd:
		return weightCartAdd
	default:
		return weightView
	}
}

// recencyDecay halves an event's influence every half-life, so recent
// activity dominates stale activity.
func recencyDecay(age time.Duration) float64 {
	if age < 0 {
		age = 0
	}
	return math.Pow(0.5, age.Hours()/recencyHalfLife.Hours())
}

func topAffinityCategories(affinity map[string]float64, n int) []string {
	categories := make([]string, 0, len(affinity))
	for category := range affinity {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if affinity[categories[i]] != affinity[categories[j]] {
			return affinity[categories[i]] > affinity[categories[j]]
		}
		return categories[i] < categories[j]
	})
	if len(categories) > n {
		categories = categories[:n]
	}
	return categories
}

// rankCandidates scores candidate products by blending the user's category
// affinity with catalog popularity, both normalized to [0,1].
func rankCandidates(candidates []models.Product, affinity map[string]float64, purchased map[int]bool, limit int) []models.Recommendation {
	var maxAffinity float64
	for _, weight := range affinity {
		if weight > maxAffinity {
			maxAffinity = weight
		}
	}
	var maxRatingCount int
	for _, candidate := range candidates {
		if !purchased[candidate.ID] && candidate.Rating.Count > maxRatingCount {
			maxRatingCount = candidate.Rating.Count
		}
	}

	recommendations := make([]models.Recommendation, 0, len(candidates))
	for _, candidate := range candidates {
		if purchased[candidate.ID] {
			continue
		}

		var affinityScore float64
		if maxAffinity > 0 {
			affinityScore = affinity[candidate.Category] / maxAffinity
		}
		var popularityScore float64
		if maxRatingCount > 0 {
			popularityScore = float64(candidate.Rating.Count) / float64(maxRatingCount)
		}

		reason := fmt.Sprintf("Because you liked %s", candidate.Category)
		if popularityBlend*popularityScore > affinityBlend*affinityScore {
			reason = fmt.Sprintf("Popular in %s", candidate.Category)
		}

		recommendations = append(recommendations, models.Recommendation{
			ProductID: candidate.ID,
			Score:     affinityBlend*affinityScore + popularityBlend*popularityScore,
			Reason:    reason,
		})
	}

	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].ProductID < recommendations[j].ProductID
	})

	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}
	return recommendations
}
