package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shopsense/api/models"
	"shopsense/api/store"
)

// fakeEventStore is an in-memory EventStore for engine tests.
type fakeEventStore struct {
	mu        sync.Mutex
	events    []models.InteractionEvent
	insertErr error
	queryErr  error
	inserted  chan models.InteractionEvent
}

func (f *fakeEventStore) InsertEvents(_ context.Context, events []models.InteractionEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inserted != nil {
		for _, event := range events {
			f.inserted <- event
		}
	}
	if f.insertErr != nil {
		return f.insertErr
	}
	f.events = append(f.events, events...)
	return nil
}

func (f *fakeEventStore) QueryEvents(_ context.Context, q store.EventQuery) ([]models.InteractionEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var results []models.InteractionEvent
	for _, event := range f.events {
		if q.UserID != "" && event.UserID != q.UserID {
			continue
		}
		if !q.Since.IsZero() && event.CreatedAt.Before(q.Since) {
			continue
		}
		if !q.Until.IsZero() && event.CreatedAt.After(q.Until) {
			continue
		}
		results = append(results, event)
	}
	return results, nil
}

// fakeProductSource is an in-memory catalog for engine tests.
type fakeProductSource struct {
	products []models.Product
	err      error
}

func (f *fakeProductSource) Product(_ context.Context, id int) (models.Product, error) {
	if f.err != nil {
		return models.Product{}, f.err
	}
	for _, product := range f.products {
		if product.ID == id {
			return product, nil
		}
	}
	return models.Product{}, fmt.Errorf("product %d not found", id)
}

func (f *fakeProductSource) Products(_ context.Context) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeProductSource) ProductsInCategories(_ context.Context, categories []string) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := make(map[string]bool, len(categories))
	for _, category := range categories {
		wanted[category] = true
	}
	var results []models.Product
	for _, product := range f.products {
		if wanted[product.Category] {
			results = append(results, product)
		}
	}
	return results, nil
}

func eventAt(userID string, productID int, t models.InteractionType, category string, created time.Time) models.InteractionEvent {
	return models.InteractionEvent{
		EventID:         fmt.Sprintf("%s-%d-%s-%d", userID, productID, t, created.UnixNano()),
		UserID:          userID,
		ProductID:       productID,
		InteractionType: t,
		Category:        category,
		CreatedAt:       created,
	}
}
