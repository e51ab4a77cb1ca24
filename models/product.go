// api/models/product.go
package models

// Product is a catalog entry. The catalog is an external read-only service;
// this engine never mutates product data.
type Product struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
	Rating   Rating  `json:"rating"`
}

// Rating is the catalog's aggregate review signal for a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}
