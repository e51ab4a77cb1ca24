// api/engine/similarity.go
package engine

import (
	"context"
	"log"
	"math"
	"sort"

	"shopsense/api/models"
)

// Category match dominates price proximity when ranking similar products.
const (
	categoryWeight = 0.7
	priceWeight    = 0.3
)

// SimilarityScorer ranks catalog products by content similarity to a seed
// product, using category match and price proximity.
type SimilarityScorer struct {
	catalog ProductSource
}

func NewSimilarityScorer(catalog ProductSource) *SimilarityScorer {
	return &SimilarityScorer{catalog: catalog}
}

// Similar returns up to limit products ranked by similarity to the seed,
// never including the seed itself. A catalog failure degrades to an empty
// result: similar-products is an enhancement, not a critical path.
func (s *SimilarityScorer) Similar(ctx context.Context, seedID int, seedCategory string, seedPrice float64, limit int) []models.Product {
	if limit <= 0 {
		return nil
	}

	candidates, err := s.catalog.Products(ctx)
	if err != nil {
		log.Printf("Similar products degraded to empty for seed %d: %v", seedID, err)
		return nil
	}

	type scoredProduct struct {
		product models.Product
		score   float64
	}
	scored := make([]scoredProduct, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.ID == seedID {
			continue
		}
		scored = append(scored, scoredProduct{
			product: candidate,
			score:   similarityScore(candidate, seedCategory, seedPrice),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].product.ID < scored[j].product.ID
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	results := make([]models.Product, 0, len(scored))
	for _, sp := range scored {
		results = append(results, sp.product)
	}
	return results
}

func similarityScore(candidate models.Product, seedCategory string, seedPrice float64) float64 {
	var score float64
	if candidate.Category == seedCategory {
		score += categoryWeight
	}
	if seedPrice > 0 {
		score += priceWeight * math.Exp(-math.Abs(candidate.Price-seedPrice)/seedPrice)
	}
	return score
}
