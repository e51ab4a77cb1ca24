// api/engine/recorder.go
package engine

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"shopsense/api/models"
	"shopsense/api/store"
)

const recordWriteTimeout = 15 * time.Second

// Recorder validates interaction events and appends them to the event
// store. The write is dispatched on a detached goroutine: tracking is
// best-effort and must never block or fail the storefront action that
// triggered it.
type Recorder struct {
	store store.EventStore

	// now and newID are swappable for tests.
	now   func() time.Time
	newID func() string
}

func NewRecorder(eventStore store.EventStore) *Recorder {
	return &Recorder{
		store: eventStore,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Record validates and dispatches one interaction event. An empty userID is
// a success no-op: tracking is strictly opt-in for authenticated users.
// Validation failures are returned; write failures are only logged.
func (r *Recorder) Record(userID string, productID int, interactionType, category string) error {
	if userID == "" {
		return nil
	}

	typ := models.InteractionType(interactionType)
	if !typ.IsValid() {
		return &ValidationError{Field: "interaction_type", Reason: "must be one of view, cart_add, purchase"}
	}
	if productID <= 0 {
		return &ValidationError{Field: "product_id", Reason: "must be a positive product id"}
	}

	event := models.InteractionEvent{
		EventID:         r.newID(),
		UserID:          userID,
		ProductID:       productID,
		InteractionType: typ,
		Category:        category,
		CreatedAt:       r.now().UTC(),
	}

	go r.write(event)
	return nil
}

func (r *Recorder) write(event models.InteractionEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), recordWriteTimeout)
	defer cancel()

	if err := r.store.InsertEvents(ctx, []models.InteractionEvent{event}); err != nil {
		log.Printf("Error recording interaction (user=%s product=%d type=%s): %v",
			event.UserID, event.ProductID, event.InteractionType, err)
	}
}
