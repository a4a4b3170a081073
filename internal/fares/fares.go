package fares

import (
	"railbook/internal/catalog"
)

// Booking classes
const (
	ClassAC1     = "AC 1st Class"
	ClassAC2     = "AC 2-Tier"
	ClassAC3     = "AC 3-Tier"
	ClassSleeper = "Sleeper"
	ClassGeneral = "General"
)

// DefaultFare applies to an absent or unrecognised class
const DefaultFare = 850

// fareTable holds the per passenger base fare of each class
var fareTable = map[string]int{
	ClassAC1:     2500,
	ClassAC2:     1800,
	ClassAC3:     1200,
	ClassSleeper: 850,
	ClassGeneral: 400,
}

// Allocation is the outcome of checking a request against seat availability
type Allocation string

const (
	Confirmed Allocation = "CONFIRMED"
	Waiting   Allocation = "WAITING"
)

// BaseFare returns the per passenger fare of class
func BaseFare(class string) int {
	if fare, ok := fareTable[class]; ok {
		return fare
	}
	return DefaultFare
}

// ComputeFare returns the total for passengers travelling in class
func ComputeFare(class string, passengers int) int {
	return passengers * BaseFare(class)
}

// DecideStatus confirms only when the train is known, reports its
// availability and has room for every passenger.
func DecideStatus(train *catalog.Train, passengers int) Allocation {
	if train == nil || train.AvailableSeats == nil {
		return Waiting
	}
	if *train.AvailableSeats >= passengers {
		return Confirmed
	}
	return Waiting
}

// ClassesFor lists the classes offered on a train type. Advisory only;
// bookings accept any class and price unknown ones at DefaultFare.
func ClassesFor(trainType catalog.TrainType) []string {
	switch trainType {
	case catalog.TrainTypeRajdhani, catalog.TrainTypeShatabdi:
		return []string{ClassAC1, ClassAC2, ClassAC3}
	default:
		return []string{ClassAC3, ClassSleeper, ClassGeneral}
	}
}
