// api/handlers/interaction_handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"shopsense/api/engine"
	"shopsense/api/models"
)

const defaultRecommendationLimit = 8

type InteractionHandlers struct {
	Recorder    *engine.Recorder
	Recommender *engine.Recommender
	Similarity  *engine.SimilarityScorer
	Catalog     engine.ProductSource
}

func NewInteractionHandlers(recorder *engine.Recorder, recommender *engine.Recommender, similarity *engine.SimilarityScorer, catalog engine.ProductSource) *InteractionHandlers {
	return &InteractionHandlers{
		Recorder:    recorder,
		Recommender: recommender,
		Similarity:  similarity,
		Catalog:     catalog,
	}
}

// RecordInteraction accepts a tracking event from the storefront. The write
// itself is fire-and-forget: the response only confirms the event was
// accepted, and a later store failure is observable via logs only.
func (h *InteractionHandlers) RecordInteraction(c *gin.Context) {
	var req models.RecordInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Recorder.Record(contextUserID(c), req.ProductID, req.InteractionType, req.Category); err != nil {
		if engine.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error recording interaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record interaction"})
		return
	}

	c.Status(http.StatusAccepted)
}

// GetRecommendations returns personalized recommendations for the
// authenticated user, enriched with catalog product details. Anonymous
// callers and users without history get an empty list, which the
// storefront uses to hide the section.
func (h *InteractionHandlers) GetRecommendations(c *gin.Context) {
	limit := defaultRecommendationLimit
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter. Must be a positive integer."})
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	recommendations := h.Recommender.Recommend(ctx, contextUserID(c), limit)
	c.JSON(http.StatusOK, h.enrichRecommendations(ctx, recommendations))
}

// enrichRecommendations fans out catalog lookups for the recommended ids.
// Entries whose catalog fetch fails are dropped rather than failing the
// whole response.
func (h *InteractionHandlers) enrichRecommendations(ctx context.Context, recommendations []models.Recommendation) []models.RecommendedProduct {
	enriched := make([]models.RecommendedProduct, 0, len(recommendations))
	if len(recommendations) == 0 {
		return enriched
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	resolved := make(map[int]models.Product, len(recommendations))

	for _, rec := range recommendations {
		rec := rec
		g.Go(func() error {
			product, err := h.Catalog.Product(gctx, rec.ProductID)
			if err != nil {
				log.Printf("Dropping recommendation %d, catalog lookup failed: %v", rec.ProductID, err)
				return nil
			}
			mu.Lock()
			resolved[rec.ProductID] = product
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	for _, rec := range recommendations {
		product, ok := resolved[rec.ProductID]
		if !ok {
			continue
		}
		enriched = append(enriched, models.RecommendedProduct{
			Recommendation: rec,
			Product:        product,
		})
	}
	return enriched
}

// GetSimilarProducts ranks catalog products by similarity to a seed
// product. A catalog outage yields an empty list, never an error.
func (h *InteractionHandlers) GetSimilarProducts(c *gin.Context) {
	productID, err := strconv.Atoi(c.Query("productId"))
	if err != nil || productID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'productId' parameter. Must be a positive integer."})
		return
	}

	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category query parameter is required"})
		return
	}

	price, err := strconv.ParseFloat(c.Query("price"), 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'price' parameter. Must be a non-negative number."})
		return
	}

	limit := 4
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter. Must be a positive integer."})
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	similar := h.Similarity.Similar(ctx, productID, category, price, limit)
	if similar == nil {
		similar = []models.Product{}
	}
	c.JSON(http.StatusOK, similar)
}

// contextUserID returns the authenticated user's id as a string, or ""
// for anonymous requests.
func contextUserID(c *gin.Context) string {
	userID, ok := c.Get("user_id")
	if !ok {
		return ""
	}
	id, ok := userID.(int)
	if !ok {
		return ""
	}
	return strconv.Itoa(id)
}
