package bookings

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"railbook/internal/catalog"
	"railbook/internal/fares"
	"railbook/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookupFunc func(id int) (*catalog.Train, bool)

func (f lookupFunc) Lookup(id int) (*catalog.Train, bool) { return f(id) }

func seats(v int) *int { return &v }

// trainsWithSeats resolves train 1 with the given availability; other ids are unknown
func trainsWithSeats(available int) TrainLookup {
	return lookupFunc(func(id int) (*catalog.Train, bool) {
		if id != 1 {
			return nil, false
		}
		return &catalog.Train{
			ID:             1,
			Name:           "Rajdhani Express",
			Type:           catalog.TrainTypeRajdhani,
			TotalSeats:     300,
			AvailableSeats: seats(available),
		}, true
	})
}

var testNow = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() func() time.Time {
	now := testNow
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func passengers(n int) []Passenger {
	out := make([]Passenger, n)
	for i := range out {
		out[i] = Passenger{Name: fmt.Sprintf("Passenger %d", i+1), Age: 30 + i, Gender: GenderFemale}
	}
	return out
}

func request(userID int64, n int) BookRequest {
	return BookRequest{
		UserID:       userID,
		TrainID:      1,
		TravelDate:   "2025-06-01",
		Passengers:   passengers(n),
		BookingClass: fares.ClassAC2,
	}
}

func TestBook_TotalAmountFollowsFareTable(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(100))
	cases := []struct {
		class string
		n     int
	}{
		{fares.ClassAC1, 1},
		{fares.ClassAC2, 2},
		{fares.ClassAC3, 3},
		{fares.ClassSleeper, 4},
		{fares.ClassGeneral, 6},
		{"", 2},
		{"Executive Chair Car", 3},
	}
	for _, tc := range cases {
		t.Run(tc.class, func(t *testing.T) {
			req := request(1, tc.n)
			req.BookingClass = tc.class

			b, err := ledger.Book(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tc.n*fares.BaseFare(tc.class), b.TotalAmount)
		})
	}
}

func TestBook_StatusFollowsAvailability(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(3))
	ctx := context.Background()

	b, err := ledger.Book(ctx, request(1, 3))
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, b.Status)
	require.NotNil(t, b.Train)
	assert.Equal(t, "Rajdhani Express", b.Train.Name)

	b, err = ledger.Book(ctx, request(1, 4))
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, b.Status)

	unknown := request(1, 1)
	unknown.TrainID = 999
	b, err = ledger.Book(ctx, unknown)
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, b.Status)
	assert.Nil(t, b.Train)
	assert.Equal(t, 999, b.TrainID)
}

func TestBook_RecordsBooking(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(10), WithClock(fixedClock()))
	req := request(42, 2)
	req.Passengers[0].Name = "  Asha Rao  "

	b, err := ledger.Book(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, b.ID)
	assert.Equal(t, int64(42), b.UserID)
	assert.Equal(t, "2025-05-01", b.BookingDate)
	assert.Equal(t, "2025-06-01", b.TravelDate)
	assert.Equal(t, fares.ClassAC2, b.BookingClass)
	assert.Nil(t, b.CancelledAt)
	require.Len(t, b.Passengers, 2)
	assert.Equal(t, "Asha Rao", b.Passengers[0].Name)
	assert.Equal(t, 1, b.Passengers[0].PassengerID)
	assert.Equal(t, 2, b.Passengers[1].SeatNumber)

	second, err := ledger.Book(context.Background(), request(42, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
}

func TestBook_PNRsAreUnique(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(1000))
	format := regexp.MustCompile(`^PNR[A-Z0-9]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		b, err := ledger.Book(context.Background(), request(1, 1))
		require.NoError(t, err)
		assert.Regexp(t, format, b.PNR)
		assert.False(t, seen[b.PNR], "duplicate PNR %s", b.PNR)
		seen[b.PNR] = true
	}
	assert.Len(t, seen, 200)
}

func sequence(pnrs ...string) PNRGenerator {
	i := 0
	return func() (string, error) {
		pnr := pnrs[i%len(pnrs)]
		i++
		return pnr, nil
	}
}

func TestBook_RegeneratesCollidingPNR(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(10), WithPNRGenerator(sequence("PNRAAAAAA", "PNRAAAAAA", "PNRBBBBBB")))

	first, err := ledger.Book(context.Background(), request(1, 1))
	require.NoError(t, err)
	second, err := ledger.Book(context.Background(), request(1, 1))
	require.NoError(t, err)

	assert.Equal(t, "PNRAAAAAA", first.PNR)
	assert.Equal(t, "PNRBBBBBB", second.PNR)
}

func TestBook_PNRAttemptsAreBounded(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(10), WithPNRGenerator(sequence("PNRAAAAAA")), WithMaxPNRAttempts(3))

	_, err := ledger.Book(context.Background(), request(1, 1))
	require.NoError(t, err)

	_, err = ledger.Book(context.Background(), request(1, 1))
	assert.ErrorIs(t, err, ErrPNRExhausted)
	assert.Equal(t, 1, ledger.Len())
}

func TestBook_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BookRequest)
		msg    string
	}{
		{"age zero", func(r *BookRequest) { r.Passengers[0].Age = 0 }, "Please enter valid ages for all passengers"},
		{"age 121", func(r *BookRequest) { r.Passengers[1].Age = 121 }, "Please enter valid ages for all passengers"},
		{"seven passengers", func(r *BookRequest) { r.Passengers = passengers(7) }, "A booking must have between 1 and 6 passengers"},
		{"no passengers", func(r *BookRequest) { r.Passengers = nil }, "A booking must have between 1 and 6 passengers"},
		{"blank name", func(r *BookRequest) { r.Passengers[1].Name = "   " }, "Please enter names for all passengers"},
		{"unknown gender", func(r *BookRequest) { r.Passengers[0].Gender = "F" }, "Gender must be one of Male, Female or Other"},
		{"no user", func(r *BookRequest) { r.UserID = 0 }, "A valid user is required to book"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := NewLedger(trainsWithSeats(10))
			req := request(1, 2)
			tc.mutate(&req)

			b, err := ledger.Book(context.Background(), req)
			assert.Nil(t, b)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
			assert.Equal(t, tc.msg, err.Error())
			assert.Equal(t, 0, ledger.Len())
		})
	}
}

func TestBook_AssignsSequentialSeats(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(10))
	for n := 1; n <= 6; n++ {
		b, err := ledger.Book(context.Background(), request(1, n))
		require.NoError(t, err)
		require.Len(t, b.Passengers, n)
		for i, p := range b.Passengers {
			assert.Equal(t, i+1, p.SeatNumber)
			assert.Equal(t, i+1, p.PassengerID)
		}
	}
}

func TestBook_Idempotency(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(10))
	ctx := context.Background()

	req := request(1, 2)
	req.IdempotencyKey = "retry-1"
	first, created, err := ledger.book(ctx, req)
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := ledger.book(ctx, req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.PNR, again.PNR)
	assert.Equal(t, 1, ledger.Len())

	// keys are scoped per user
	other := request(2, 1)
	other.IdempotencyKey = "retry-1"
	b, err := ledger.Book(ctx, other)
	require.NoError(t, err)
	assert.NotEqual(t, first.PNR, b.PNR)

	// no key, no deduplication
	_, err = ledger.Book(ctx, request(1, 2))
	require.NoError(t, err)
	_, err = ledger.Book(ctx, request(1, 2))
	require.NoError(t, err)
	assert.Equal(t, 4, ledger.Len())
}

func TestBook_CancelledContext(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(10))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ledger.Book(ctx, request(1, 1))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, ledger.Len())
}

func TestCancel(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(10), WithClock(fixedClock()))
	b, err := ledger.Book(context.Background(), request(1, 2))
	require.NoError(t, err)

	_, err = ledger.Cancel(b.PNR, 2)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "Booking not found or unauthorized", err.Error())
	still, err := ledger.Get(b.PNR, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, still.Status)

	msg, err := ledger.Cancel(b.PNR, 1)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Ticket with PNR %s has been cancelled.", b.PNR), msg)

	cancelled, err := ledger.Get(b.PNR, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	firstCancel := *cancelled.CancelledAt

	// repeating the cancel is a no-op success
	msg, err = ledger.Cancel(b.PNR, 1)
	require.NoError(t, err)
	assert.Contains(t, msg, b.PNR)
	again, _ := ledger.Get(b.PNR, 1)
	assert.Equal(t, StatusCancelled, again.Status)
	assert.Equal(t, firstCancel, *again.CancelledAt)

	_, err = ledger.Cancel("PNRNOPE00", 1)
	assert.True(t, apperror.IsNotFound(err))
}

func TestListByUser(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(10))
	ctx := context.Background()

	var want []string
	for i := 0; i < 6; i++ {
		user := int64(1 + i%2)
		b, err := ledger.Book(ctx, request(user, 1))
		require.NoError(t, err)
		if user == 1 {
			want = append(want, b.PNR)
		}
	}
	_, err := ledger.Cancel(want[1], 1)
	require.NoError(t, err)

	list := ledger.ListByUser(1)
	require.Len(t, list, len(want))
	for i, b := range list {
		assert.Equal(t, want[i], b.PNR)
		assert.Equal(t, int64(1), b.UserID)
	}
	assert.Equal(t, StatusCancelled, list[1].Status)

	empty := ledger.ListByUser(99)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGet_ReturnsCopies(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(10))
	b, err := ledger.Book(context.Background(), request(1, 2))
	require.NoError(t, err)

	b.Passengers[0].Name = "changed"
	b.Train.Name = "changed"

	stored, err := ledger.Get(b.PNR, 1)
	require.NoError(t, err)
	assert.Equal(t, "Passenger 1", stored.Passengers[0].Name)
	assert.Equal(t, "Rajdhani Express", stored.Train.Name)

	_, err = ledger.Get(b.PNR, 2)
	assert.True(t, apperror.IsNotFound(err))
}

func TestLedger_WithInventory(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(2), WithInventory(fares.NewInventory()))
	ctx := context.Background()

	first, err := ledger.Book(ctx, request(1, 2))
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, first.Status)

	// the snapshot still says 2 seats but they are taken
	second, err := ledger.Book(ctx, request(1, 1))
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, second.Status)

	_, err = ledger.Cancel(first.PNR, 1)
	require.NoError(t, err)

	third, err := ledger.Book(ctx, request(1, 2))
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, third.Status)
}

func TestLedger_CancelTwiceReleasesOnce(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(2), WithInventory(fares.NewInventory()))
	ctx := context.Background()

	first, err := ledger.Book(ctx, request(1, 2))
	require.NoError(t, err)
	for range 2 {
		_, err = ledger.Cancel(first.PNR, 1)
		require.NoError(t, err)
	}

	second, err := ledger.Book(ctx, request(1, 2))
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, second.Status)

	third, err := ledger.Book(ctx, request(1, 1))
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, third.Status)
}

func TestLedger_WithoutInventoryNeverConsumesSeats(t *testing.T) {
	ledger := NewLedger(trainsWithSeats(2))
	for i := 0; i < 3; i++ {
		b, err := ledger.Book(context.Background(), request(1, 2))
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, b.Status)
	}
}

func TestRandomPNR(t *testing.T) {
	pnr, err := RandomPNR()
	require.NoError(t, err)
	assert.Regexp(t, `^PNR[A-Z0-9]{6}$`, pnr)
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusWaiting.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.Equal(t, fares.Confirmed, StatusConfirmed.allocation())
	assert.Equal(t, StatusWaiting, statusFor(fares.Waiting))
}
