// api/store/event_store.go
package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"shopsense/api/database"
	"shopsense/api/models"
)

// EventQuery narrows a read of the interaction history. Zero values mean
// "no filter". Results are always ordered by created_at ascending.
type EventQuery struct {
	UserID string
	Since  time.Time
	Until  time.Time
}

// EventStore is the engine's contract with the durable interaction store:
// append-only writes plus windowed reads. The ClickHouse implementation
// below is the production one; tests substitute in-memory fakes.
type EventStore interface {
	InsertEvents(ctx context.Context, events []models.InteractionEvent) error
	QueryEvents(ctx context.Context, q EventQuery) ([]models.InteractionEvent, error)
}

type ClickHouseEventStore struct {
	DB *database.ClickHouseClient
}

func NewClickHouseEventStore(chClient *database.ClickHouseClient) *ClickHouseEventStore {
	return &ClickHouseEventStore{
		DB: chClient,
	}
}

func (s *ClickHouseEventStore) InsertEvents(ctx context.Context, events []models.InteractionEvent) error {
	if len(events) == 0 {
		return nil
	}

	// Column names and order must exactly match the ClickHouse table schema.
	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO user_interactions (
			event_id, user_id, product_id, interaction_type, category, created_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, event := range events {
		err := batch.Append(
			event.EventID,
			event.UserID,
			event.ProductID,
			string(event.InteractionType),
			event.Category,
			event.CreatedAt,
		)
		if err != nil {
			log.Printf("Error appending event to batch (EventID: %s): %v", event.EventID, err)
		}
	}

	err = batch.Send()
	if err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	log.Printf("Successfully inserted %d interaction events.", len(events))
	return nil
}

func (s *ClickHouseEventStore) QueryEvents(ctx context.Context, q EventQuery) ([]models.InteractionEvent, error) {
	query := `
		SELECT event_id, user_id, product_id, interaction_type, category, created_at
		FROM user_interactions
	`
	var args []interface{}
	whereClause := ""
	appendCond := func(cond string, arg interface{}) {
		if whereClause == "" {
			whereClause = "WHERE " + cond
		} else {
			whereClause += " AND " + cond
		}
		args = append(args, arg)
	}

	if q.UserID != "" {
		appendCond("user_id = ?", q.UserID)
	}
	if !q.Since.IsZero() {
		appendCond("created_at >= ?", q.Since)
	}
	if !q.Until.IsZero() {
		appendCond("created_at <= ?", q.Until)
	}

	query = fmt.Sprintf("%s %s ORDER BY created_at ASC", query, whereClause)

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query interaction events: %w", err)
	}
	defer rows.Close()

	var results []models.InteractionEvent
	for rows.Next() {
		var (
			event           models.InteractionEvent
			productID       int32
			interactionType string
		)
		if err := rows.Scan(
			&event.EventID,
			&event.UserID,
			&productID,
			&interactionType,
			&event.Category,
			&event.CreatedAt,
		); err != nil {
			log.Printf("Error scanning interaction event row: %v", err)
			continue
		}
		event.ProductID = int(productID)
		event.InteractionType = models.InteractionType(interactionType)
		results = append(results, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during interaction events query: %w", err)
	}

	return results, nil
}
