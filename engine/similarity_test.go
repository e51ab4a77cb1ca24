package engine

import (
	"context"
	"errors"
	"testing"

	"shopsense/api/models"
)

func testCatalog() *fakeProductSource {
	return &fakeProductSource{products: []models.Product{
		{ID: 1, Title: "USB hub", Price: 10, Category: "A"},
		{ID: 2, Title: "USB cable", Price: 12, Category: "A"},
		{ID: 3, Title: "Desk lamp", Price: 50, Category: "B"},
	}}
}

func TestSimilarRanksCategoryAndPriceProximity(t *testing.T) {
	scorer := NewSimilarityScorer(testCatalog())

	results := scorer.Similar(context.Background(), 1, "A", 10, 2)
	if len(results) != 2 {
		t.Fatalf("Similar() returned %d products, want 2", len(results))
	}
	if results[0].ID != 2 || results[1].ID != 3 {
		t.Fatalf("Similar() order = [%d, %d], want [2, 3]", results[0].ID, results[1].ID)
	}

	// The same-category close-price candidate must strictly outrank the
	// cross-category one.
	p2 := similarityScore(results[0], "A", 10)
	p3 := similarityScore(results[1], "A", 10)
	if p2 <= p3 {
		t.Errorf("score(p2)=%f should be strictly greater than score(p3)=%f", p2, p3)
	}
}

func TestSimilarNeverIncludesSeed(t *testing.T) {
	scorer := NewSimilarityScorer(testCatalog())

	for _, seed := range []int{1, 2, 3} {
		results := scorer.Similar(context.Background(), seed, "A", 10, 10)
		for _, product := range results {
			if product.ID == seed {
				t.Errorf("Similar(seed=%d) included the seed product", seed)
			}
		}
	}
}

func TestSimilarRespectsLimit(t *testing.T) {
	scorer := NewSimilarityScorer(testCatalog())

	tests := []struct {
		limit int
		want  int
	}{
		{limit: 1, want: 1},
		{limit: 2, want: 2},
		{limit: 10, want: 2}, // only two non-seed products exist
		{limit: 0, want: 0},
	}
	for _, tt := range tests {
		results := scorer.Similar(context.Background(), 1, "A", 10, tt.limit)
		if len(results) != tt.want {
			t.Errorf("Similar(limit=%d) returned %d products, want %d", tt.limit, len(results), tt.want)
		}
	}
}

func TestSimilarTieBreaksByProductID(t *testing.T) {
	catalog := &fakeProductSource{products: []models.Product{
		{ID: 9, Price: 20, Category: "A"},
		{ID: 4, Price: 20, Category: "A"},
		{ID: 7, Price: 20, Category: "A"},
	}}
	scorer := NewSimilarityScorer(catalog)

	results := scorer.Similar(context.Background(), 99, "A", 20, 3)
	if len(results) != 3 {
		t.Fatalf("Similar() returned %d products, want 3", len(results))
	}
	if results[0].ID != 4 || results[1].ID != 7 || results[2].ID != 9 {
		t.Errorf("tied scores should order by ascending id, got [%d, %d, %d]",
			results[0].ID, results[1].ID, results[2].ID)
	}
}

func TestSimilarFailsOpenWhenCatalogUnreachable(t *testing.T) {
	scorer := NewSimilarityScorer(&fakeProductSource{err: errors.New("connection refused")})

	results := scorer.Similar(context.Background(), 1, "A", 10, 4)
	if len(results) != 0 {
		t.Fatalf("Similar() with unreachable catalog should be empty, got %d products", len(results))
	}
}
