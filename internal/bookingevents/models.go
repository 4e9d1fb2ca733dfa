package bookingevents

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventBookingCreated       EventType = "booking.created"
	EventBookingStatusChanged EventType = "booking.status_changed"
)

// BookingEvent is the wire format published to the booking event topic.
// Events are partitioned by owner ID so each owner's stream stays ordered.
type BookingEvent struct {
	Type       EventType `json:"type"`
	BookingID  string    `json:"booking_id"`
	VehicleID  string    `json:"vehicle_id"`
	OwnerID    string    `json:"owner_id"`
	Status     string    `json:"status"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey returns the key used for Kafka partitioning.
func (e *BookingEvent) GetPartitionKey() string {
	return e.OwnerID
}
