package bookings

type BookTicketResponse struct {
	PNRNumber   string   `json:"pnr_number"`
	Status      Status   `json:"status"`
	TotalAmount int      `json:"total_amount"`
	Booking     *Booking `json:"booking"`
}

type CancelTicketResponse struct {
	PNRNumber string `json:"pnr_number"`
	Status    Status `json:"status"`
}
