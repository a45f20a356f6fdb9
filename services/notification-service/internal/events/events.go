package events

import (
	"encoding/json"
	"fmt"
)

const (
	RKReservationCreated   = "reservation.created"
	RKReservationUpdated   = "reservation.updated"
	RKReservationConfirmed = "reservation.confirmed"
	RKReservationCancelled = "reservation.cancelled"
	RKReservationDeleted   = "reservation.deleted"
)

// ReservationCreated carries enough for a human-readable notification.
type ReservationCreated struct {
	ReservationID string `json:"reservation_id"`
	BoatID        string `json:"boat_id"`
	FullName      string `json:"full_name"`
	Start         string `json:"start"` // YYYY-MM-DD
	End           string `json:"end"`
}

type ReservationChanged struct {
	ReservationID string `json:"reservation_id"`
	BoatID        string `json:"boat_id,omitempty"`
	Status        string `json:"status,omitempty"`
}

func Unmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
