// api/models/event.go
package models

import "time"

// InteractionType classifies a user action against a product.
type InteractionType string

const (
	InteractionView     InteractionType = "view"
	InteractionCartAdd  InteractionType = "cart_add"
	InteractionPurchase InteractionType = "purchase"
)

// IsValid reports whether t is one of the recognized interaction types.
func (t InteractionType) IsValid() bool {
	switch t {
	case InteractionView, InteractionCartAdd, InteractionPurchase:
		return true
	default:
		return false
	}
}

// InteractionEvent is a single recorded user action against a product.
// Events are immutable once written; the engine never updates or deletes them.
type InteractionEvent struct {
	EventID         string          `json:"event_id"`
	UserID          string          `json:"user_id"`
	ProductID       int             `json:"product_id"`
	InteractionType InteractionType `json:"interaction_type"`
	Category        string          `json:"category,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// RecordInteractionRequest is the payload the storefront sends when tracking
// a user action. The user identity comes from the auth context, not the body.
type RecordInteractionRequest struct {
	ProductID       int    `json:"product_id" binding:"required"`
	InteractionType string `json:"interaction_type" binding:"required"`
	Category        string `json:"category"`
}
