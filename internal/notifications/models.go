package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingConfirmed  EventType = "BOOKING_CONFIRMED"
	EventBookingWaitlisted EventType = "BOOKING_WAITLISTED"
	EventBookingCancelled  EventType = "BOOKING_CANCELLED"
)

// BookingEvent is published after every booking state change
type BookingEvent struct {
	ID             uuid.UUID `json:"event_id"`
	Type           EventType `json:"type"`
	PNR            string    `json:"pnr_number"`
	UserID         int64     `json:"user_id"`
	TrainID        int       `json:"train_id"`
	Status         string    `json:"status"`
	TravelDate     string    `json:"travel_date"`
	BookingClass   string    `json:"booking_class"`
	PassengerCount int       `json:"passenger_count"`
	TotalAmount    int       `json:"total_amount"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewBookingEvent returns an event of the given type with a fresh id
func NewBookingEvent(eventType EventType, pnr string) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New(),
		Type:       eventType,
		PNR:        pnr,
		OccurredAt: time.Now().UTC(),
	}
}

// GetPartitionKey keeps every event of one booking on one partition
func (e *BookingEvent) GetPartitionKey() string {
	return e.PNR
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
