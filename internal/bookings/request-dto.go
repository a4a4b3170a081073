package bookings

// BookTicketRequest is the body of POST /bookings. Passenger rules are
// enforced by the ledger so every caller gets the same messages.
type BookTicketRequest struct {
	TrainID      int         `json:"train_id" binding:"required,min=1"`
	TravelDate   string      `json:"travel_date" binding:"required,datetime=2006-01-02"`
	BookingClass string      `json:"booking_class"`
	Passengers   []Passenger `json:"passengers"`
}

func (r BookTicketRequest) toBookRequest(userID int64, idempotencyKey string) BookRequest {
	return BookRequest{
		UserID:         userID,
		TrainID:        r.TrainID,
		TravelDate:     r.TravelDate,
		Passengers:     r.Passengers,
		BookingClass:   r.BookingClass,
		IdempotencyKey: idempotencyKey,
	}
}
