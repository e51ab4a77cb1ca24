// api/catalog/client.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"shopsense/api/models"
)

const (
	defaultBaseURL  = "https://fakestoreapi.com"
	defaultCacheTTL = 5 * time.Minute

	cacheKeyAll      = "products:all"
	cacheKeyCategory = "products:category:"
	cacheKeyProduct  = "product:"
)

// Client reads products from the external catalog service. Responses are
// cached with a TTL because the catalog changes far less often than the
// storefront asks for it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *gocache.Cache
}

func NewClient() *Client {
	baseURL := os.Getenv("CATALOG_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	ttl := defaultCacheTTL
	if ttlStr := os.Getenv("CATALOG_CACHE_TTL_SECONDS"); ttlStr != "" {
		if secs, err := strconv.Atoi(ttlStr); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      gocache.New(ttl, 2*ttl),
	}
}

// Product fetches a single catalog entry by id.
func (c *Client) Product(ctx context.Context, id int) (models.Product, error) {
	key := cacheKeyProduct + strconv.Itoa(id)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(models.Product), nil
	}

	var product models.Product
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return models.Product{}, err
	}

	c.cache.SetDefault(key, product)
	return product, nil
}

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	if cached, ok := c.cache.Get(cacheKeyAll); ok {
		return cached.([]models.Product), nil
	}

	var products []models.Product
	if err := c.getJSON(ctx, "/products", &products); err != nil {
		return nil, err
	}

	c.cache.SetDefault(cacheKeyAll, products)
	return products, nil
}

// ProductsByCategory fetches the catalog entries for one category.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	key := cacheKeyCategory + category
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]models.Product), nil
	}

	var products []models.Product
	path := "/products/category/" + url.PathEscape(category)
	if err := c.getJSON(ctx, path, &products); err != nil {
		return nil, err
	}

	c.cache.SetDefault(key, products)
	return products, nil
}

// ProductsInCategories fetches several categories concurrently and merges
// the results. One failing category fails the whole call.
func (c *Client) ProductsInCategories(ctx context.Context, categories []string) ([]models.Product, error) {
	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	var merged []models.Product

	for _, category := range categories {
		category := category
		g.Go(func() error {
			products, err := c.ProductsByCategory(gctx, category)
			if err != nil {
				return err
			}
			mu.Lock()
			merged = append(merged, products...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merged, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return nil
}
