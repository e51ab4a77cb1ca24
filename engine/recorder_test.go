package engine

import (
	"errors"
	"testing"
	"time"

	"shopsense/api/models"
)

func newTestRecorder(fake *fakeEventStore) *Recorder {
	r := NewRecorder(fake)
	r.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	r.newID = func() string { return "fixed-id" }
	return r
}

func TestRecorderValidation(t *testing.T) {
	tests := []struct {
		name            string
		userID          string
		productID       int
		interactionType string
		wantValidation  bool
	}{
		{name: "view is valid", userID: "u1", productID: 3, interactionType: "view"},
		{name: "cart_add is valid", userID: "u1", productID: 3, interactionType: "cart_add"},
		{name: "purchase is valid", userID: "u1", productID: 3, interactionType: "purchase"},
		{name: "unknown type rejected", userID: "u1", productID: 3, interactionType: "hover", wantValidation: true},
		{name: "empty type rejected", userID: "u1", productID: 3, interactionType: "", wantValidation: true},
		{name: "non-positive product rejected", userID: "u1", productID: 0, interactionType: "view", wantValidation: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventStore{inserted: make(chan models.InteractionEvent, 1)}
			recorder := newTestRecorder(fake)

			err := recorder.Record(tt.userID, tt.productID, tt.interactionType, "electronics")
			if tt.wantValidation {
				if !IsValidation(err) {
					t.Fatalf("Record() error = %v, want ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Record() unexpected error: %v", err)
			}

			select {
			case event := <-fake.inserted:
				if event.UserID != tt.userID || event.ProductID != tt.productID {
					t.Errorf("inserted event = %+v, want user %s product %d", event, tt.userID, tt.productID)
				}
				if event.InteractionType != models.InteractionType(tt.interactionType) {
					t.Errorf("inserted type = %s, want %s", event.InteractionType, tt.interactionType)
				}
			case <-time.After(time.Second):
				t.Fatal("event was never written to the store")
			}
		})
	}
}

func TestRecorderAnonymousUserIsNoOp(t *testing.T) {
	fake := &fakeEventStore{inserted: make(chan models.InteractionEvent, 1)}
	recorder := newTestRecorder(fake)

	if err := recorder.Record("", 3, "view", "electronics"); err != nil {
		t.Fatalf("Record() with no user should succeed trivially, got %v", err)
	}

	select {
	case event := <-fake.inserted:
		t.Fatalf("anonymous interaction should not be written, got %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

// A failing store write must never surface past the recorder: the
// storefront action that triggered the tracking call already succeeded.
func TestRecorderSwallowsWriteFailure(t *testing.T) {
	fake := &fakeEventStore{
		insertErr: errors.New("clickhouse down"),
		inserted:  make(chan models.InteractionEvent, 1),
	}
	recorder := newTestRecorder(fake)

	if err := recorder.Record("u1", 3, "cart_add", "electronics"); err != nil {
		t.Fatalf("Record() must not propagate write failures, got %v", err)
	}

	select {
	case <-fake.inserted:
	case <-time.After(time.Second):
		t.Fatal("write was never attempted")
	}
}
