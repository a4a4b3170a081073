package bookings

import "railbook/internal/fares"

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusWaiting   Status = "WAITING"
	StatusCancelled Status = "CANCELLED"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsActive checks if the booking is active (not cancelled)
func (s Status) IsActive() bool {
	return s == StatusConfirmed || s == StatusWaiting
}

func statusFor(a fares.Allocation) Status {
	if a == fares.Confirmed {
		return StatusConfirmed
	}
	return StatusWaiting
}

func (s Status) allocation() fares.Allocation {
	if s == StatusConfirmed {
		return fares.Confirmed
	}
	return fares.Waiting
}
