package domain

import "time"

// Boat is a catalog entry. Availability is not stored on the boat: it is
// derived from reservation rows, so the catalog can never disagree with the
// booking ledger.
type Boat struct {
	ID          string   `gorm:"primaryKey" json:"id"`
	Name        string   `json:"name"`
	ImageURL    string   `json:"imageUrl"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Capacity    int      `json:"capacity"`
	Length      float64  `json:"length"`
	Year        int      `json:"year"`
	MotorPower  string   `json:"motorPower,omitempty"`
	Description string   `json:"description"`
	Features    []string `gorm:"serializer:json" json:"features"`
}

// Reservation is this service's view of the shared reservations table, just
// enough for the availability query and the legacy booking endpoint.
type Reservation struct {
	ID        string    `gorm:"primaryKey"`
	BoatID    string    `gorm:"index"`
	FullName  string
	StartDate time.Time
	EndDate   time.Time
	Status    string    `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Reservation) TableName() string { return "reservations" }
