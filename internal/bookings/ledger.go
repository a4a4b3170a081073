package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"railbook/internal/catalog"
	"railbook/internal/fares"
	"railbook/internal/shared/apperror"
)

const defaultMaxPNRAttempts = 10

// ErrPNRExhausted is returned when no unused PNR was found within the
// configured number of attempts
var ErrPNRExhausted = errors.New("could not generate a unique PNR")

// TrainLookup resolves train ids registered by search or the catalog
type TrainLookup interface {
	Lookup(id int) (*catalog.Train, bool)
}

type idempotencyKey struct {
	userID int64
	key    string
}

// Ledger is the authoritative in-memory booking store. All mutations are
// serialized on mu; callers only ever receive copies.
type Ledger struct {
	mu          sync.Mutex
	bookings    []*Booking
	byPNR       map[string]*Booking
	idempotency map[idempotencyKey]string
	nextID      int

	trains         TrainLookup
	inventory      *fares.Inventory
	generatePNR    PNRGenerator
	maxPNRAttempts int
	now            func() time.Time
}

type LedgerOption func(*Ledger)

// WithInventory makes bookings consume tracked seats
func WithInventory(inv *fares.Inventory) LedgerOption {
	return func(l *Ledger) { l.inventory = inv }
}

func WithPNRGenerator(gen PNRGenerator) LedgerOption {
	return func(l *Ledger) { l.generatePNR = gen }
}

func WithMaxPNRAttempts(n int) LedgerOption {
	return func(l *Ledger) {
		if n > 0 {
			l.maxPNRAttempts = n
		}
	}
}

func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) { l.now = now }
}

func NewLedger(trains TrainLookup, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		byPNR:          make(map[string]*Booking),
		idempotency:    make(map[idempotencyKey]string),
		trains:         trains,
		generatePNR:    RandomPNR,
		maxPNRAttempts: defaultMaxPNRAttempts,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Book validates req and records a new booking. An unknown train is
// accepted and always waitlisted.
func (l *Ledger) Book(ctx context.Context, req BookRequest) (*Booking, error) {
	b, _, err := l.book(ctx, req)
	return b, err
}

// book reports created=false when req replays an earlier idempotency key
func (l *Ledger) book(ctx context.Context, req BookRequest) (*Booking, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	if err := validateRequest(&req); err != nil {
		return nil, false, err
	}

	var train *catalog.Train
	if l.trains != nil {
		train, _ = l.trains.Lookup(req.TrainID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idemKey := idempotencyKey{userID: req.UserID, key: req.IdempotencyKey}
	if req.IdempotencyKey != "" {
		if pnr, ok := l.idempotency[idemKey]; ok {
			return l.byPNR[pnr].clone(), false, nil
		}
	}

	pnr, err := l.uniquePNR()
	if err != nil {
		return nil, false, err
	}

	var allocation fares.Allocation
	if l.inventory != nil {
		allocation = l.inventory.Allocate(train, len(req.Passengers))
	} else {
		allocation = fares.DecideStatus(train, len(req.Passengers))
	}

	passengers := make([]PassengerWithSeat, len(req.Passengers))
	for i, p := range req.Passengers {
		p.Name = strings.TrimSpace(p.Name)
		passengers[i] = PassengerWithSeat{PassengerID: i + 1, Passenger: p, SeatNumber: i + 1}
	}

	now := l.now()
	l.nextID++
	status := statusFor(allocation)
	b := &Booking{
		ID:           l.nextID,
		PNR:          pnr,
		UserID:       req.UserID,
		TrainID:      req.TrainID,
		Train:        train,
		BookingDate:  now.Format(time.DateOnly),
		TravelDate:   req.TravelDate,
		Status:       status,
		BookingClass: req.BookingClass,
		TotalAmount:  fares.ComputeFare(req.BookingClass, len(req.Passengers)),
		Passengers:   passengers,
		CreatedAt:    now,
		heldAs:       status,
	}

	l.bookings = append(l.bookings, b)
	l.byPNR[pnr] = b
	if req.IdempotencyKey != "" {
		l.idempotency[idemKey] = pnr
	}
	return b.clone(), true, nil
}

// uniquePNR must be called with mu held
func (l *Ledger) uniquePNR() (string, error) {
	for range l.maxPNRAttempts {
		pnr, err := l.generatePNR()
		if err != nil {
			return "", err
		}
		if _, taken := l.byPNR[pnr]; !taken {
			return pnr, nil
		}
	}
	return "", ErrPNRExhausted
}

// ListByUser returns the user's bookings in insertion order, cancelled
// ones included
func (l *Ledger) ListByUser(userID int64) []Booking {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Booking, 0)
	for _, b := range l.bookings {
		if b.UserID == userID {
			out = append(out, *b.clone())
		}
	}
	return out
}

// Get returns the booking with pnr when it belongs to userID
func (l *Ledger) Get(pnr string, userID int64) (*Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := l.owned(pnr, userID)
	if err != nil {
		return nil, err
	}
	return b.clone(), nil
}

// Cancel marks the booking CANCELLED. Cancelling twice succeeds and
// leaves the first cancellation time in place.
func (l *Ledger) Cancel(pnr string, userID int64) (string, error) {
	_, _, err := l.cancel(pnr, userID)
	if err != nil {
		return "", err
	}
	return cancelMessage(pnr), nil
}

func (l *Ledger) cancel(pnr string, userID int64) (*Booking, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := l.owned(pnr, userID)
	if err != nil {
		return nil, false, err
	}
	if !b.Status.IsActive() {
		return b.clone(), false, nil
	}

	if l.inventory != nil {
		l.inventory.Release(b.Train, len(b.Passengers), b.heldAs.allocation())
	}
	now := l.now()
	b.Status = StatusCancelled
	b.CancelledAt = &now
	return b.clone(), true, nil
}

// Len returns the number of bookings ever recorded
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.bookings)
}

func (l *Ledger) owned(pnr string, userID int64) (*Booking, error) {
	b, ok := l.byPNR[pnr]
	if !ok || b.UserID != userID {
		return nil, apperror.NewNotFound("booking", "Booking not found or unauthorized")
	}
	return b, nil
}

func cancelMessage(pnr string) string {
	return fmt.Sprintf("Ticket with PNR %s has been cancelled.", pnr)
}
