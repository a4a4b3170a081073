package bookings

import (
	"context"

	"railbook/internal/notifications"
	"railbook/pkg/logger"
)

// Service is the booking surface used by the HTTP layer
type Service interface {
	// BookTicket reports created=false when an idempotency key was replayed
	BookTicket(ctx context.Context, req BookRequest) (*Booking, bool, error)
	GetUserBookings(ctx context.Context, userID int64) []Booking
	GetBooking(ctx context.Context, pnr string, userID int64) (*Booking, error)
	CancelTicket(ctx context.Context, pnr string, userID int64) (string, error)
}

type service struct {
	ledger    *Ledger
	publisher notifications.Publisher
	log       *logger.Logger
}

// NewService wraps ledger with logging and event publishing. A nil
// publisher drops events.
func NewService(ledger *Ledger, publisher notifications.Publisher) Service {
	if publisher == nil {
		publisher = notifications.NoopPublisher{}
	}
	return &service{
		ledger:    ledger,
		publisher: publisher,
		log:       logger.GetDefault(),
	}
}

func (s *service) BookTicket(ctx context.Context, req BookRequest) (*Booking, bool, error) {
	booking, created, err := s.ledger.book(ctx, req)
	if err != nil {
		return nil, false, err
	}
	if !created {
		return booking, false, nil
	}

	s.log.LogBookingCreated(ctx, booking.PNR, booking.TrainID, booking.UserID, booking.Status.String())

	eventType := notifications.EventBookingConfirmed
	if booking.Status == StatusWaiting {
		eventType = notifications.EventBookingWaitlisted
	}
	s.publish(ctx, eventType, booking)
	return booking, true, nil
}

func (s *service) GetUserBookings(_ context.Context, userID int64) []Booking {
	return s.ledger.ListByUser(userID)
}

func (s *service) GetBooking(_ context.Context, pnr string, userID int64) (*Booking, error) {
	return s.ledger.Get(pnr, userID)
}

func (s *service) CancelTicket(ctx context.Context, pnr string, userID int64) (string, error) {
	booking, changed, err := s.ledger.cancel(pnr, userID)
	if err != nil {
		return "", err
	}
	if changed {
		s.log.LogBookingCancelled(ctx, pnr, userID)
		s.publish(ctx, notifications.EventBookingCancelled, booking)
	}
	return cancelMessage(pnr), nil
}

// publish never fails the caller; the booking is already recorded
func (s *service) publish(ctx context.Context, eventType notifications.EventType, b *Booking) {
	event := notifications.NewBookingEvent(eventType, b.PNR)
	event.UserID = b.UserID
	event.TrainID = b.TrainID
	event.Status = b.Status.String()
	event.TravelDate = b.TravelDate
	event.BookingClass = b.BookingClass
	event.PassengerCount = len(b.Passengers)
	event.TotalAmount = b.TotalAmount

	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to publish booking event", err, map[string]interface{}{
			"pnr":  b.PNR,
			"type": string(eventType),
		})
	}
}
