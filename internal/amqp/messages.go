package amqp

import (
	"encoding/json"
	"time"

	"hisab/internal/core"
)

// Booking event kinds carried on the export queue.
const (
	EventBookingCreated = "booking_created"
	EventBookingUpdated = "booking_updated"
	EventBookingDeleted = "booking_deleted"
	EventTeamDeleted    = "team_deleted"
)

// BookingEventMessage is published after every successful booking mutation.
// It carries the full booking so the export worker never has to reach back
// into the store.
type BookingEventMessage struct {
	Kind      string       `json:"kind"`
	TeamName  string       `json:"teamName"`
	BookingID string       `json:"bookingId,omitempty"`
	Booking   core.Booking `json:"booking,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewBookingEventMessage creates an event message stamped with the current time.
func NewBookingEventMessage(kind, teamName string, b core.Booking) *BookingEventMessage {
	return &BookingEventMessage{
		Kind:      kind,
		TeamName:  teamName,
		BookingID: b.ID,
		Booking:   b,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *BookingEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BookingEventMessageFromJSON creates a message from JSON bytes
func BookingEventMessageFromJSON(data []byte) (*BookingEventMessage, error) {
	var msg BookingEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
