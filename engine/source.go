// api/engine/source.go
package engine

import (
	"context"

	"shopsense/api/models"
)

// ProductSource is the engine's read-only view of the external catalog.
// The production implementation is catalog.Client.
type ProductSource interface {
	Product(ctx context.Context, id int) (models.Product, error)
	Products(ctx context.Context) ([]models.Product, error)
	ProductsInCategories(ctx context.Context, categories []string) ([]models.Product, error)
}
