package domain

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a reservation may move from s to next.
// pending is the only non-terminal state; nothing moves back to it.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	return s == StatusPending && (next == StatusConfirmed || next == StatusCancelled)
}

// Reservation holds a boat for the closed date range [StartDate, EndDate].
// A single-day rental has StartDate == EndDate.
type Reservation struct {
	ID         string    `gorm:"primaryKey"`
	BoatID     string    `gorm:"index:idx_boat_dates"`
	FullName   string
	Email      string
	Phone      string
	StartDate  time.Time `gorm:"index:idx_boat_dates"`
	EndDate    time.Time `gorm:"index:idx_boat_dates"`
	TotalPrice float64
	Status     Status    `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
