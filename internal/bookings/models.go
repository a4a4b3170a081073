package bookings

import (
	"time"

	"railbook/internal/catalog"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Passenger is one traveller on a booking request
type Passenger struct {
	Name   string `json:"passenger_name" validate:"notblank"`
	Age    int    `json:"age" validate:"min=1,max=120"`
	Gender string `json:"gender" validate:"oneof=Male Female Other"`
}

// PassengerWithSeat is a passenger as stored on a booking
type PassengerWithSeat struct {
	PassengerID int `json:"passenger_id"`
	Passenger
	SeatNumber int `json:"seat_number"`
}

type Booking struct {
	ID           int                 `json:"booking_id"`
	PNR          string              `json:"pnr_number"`
	UserID       int64               `json:"user_id"`
	TrainID      int                 `json:"train_id"`
	Train        *catalog.Train      `json:"train,omitempty"`
	BookingDate  string              `json:"booking_date"`
	TravelDate   string              `json:"travel_date"`
	Status       Status              `json:"status"`
	BookingClass string              `json:"booking_class"`
	TotalAmount  int                 `json:"total_amount"`
	Passengers   []PassengerWithSeat `json:"passengers"`
	CreatedAt    time.Time           `json:"created_at"`
	CancelledAt  *time.Time          `json:"cancelled_at,omitempty"`

	// status at creation, needed to release inventory on cancel
	heldAs Status
}

func (b *Booking) clone() *Booking {
	cp := *b
	cp.Train = b.Train.Clone()
	cp.Passengers = append([]PassengerWithSeat(nil), b.Passengers...)
	if b.CancelledAt != nil {
		t := *b.CancelledAt
		cp.CancelledAt = &t
	}
	return &cp
}

// BookRequest is the ledger input for a new booking
type BookRequest struct {
	UserID         int64       `validate:"gt=0"`
	TrainID        int         `validate:"-"`
	TravelDate     string      `validate:"-"`
	Passengers     []Passenger `validate:"min=1,max=6,dive"`
	BookingClass   string      `validate:"-"`
	IdempotencyKey string      `validate:"max=255"`
}
