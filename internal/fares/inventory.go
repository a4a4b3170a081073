package fares

import (
	"strings"
	"sync"

	"railbook/internal/catalog"
)

type counter struct {
	total     int
	available *int
	waiting   int
}

// trainKey identifies a physical train across catalog refreshes. The train
// number is stable; trains without one fall back to id and name so a
// positional id handed to a different train does not inherit its counts.
type trainKey struct {
	number string
	id     int
	name   string
}

func keyOf(train *catalog.Train) trainKey {
	if n := strings.TrimSpace(train.Number); n != "" {
		return trainKey{number: n}
	}
	return trainKey{id: train.ID, name: train.Name}
}

// Inventory tracks seats per train once bookings start consuming them.
// Counters are seeded from the first snapshot seen for a train; later
// snapshots for the same train are ignored.
type Inventory struct {
	mu       sync.Mutex
	counters map[trainKey]*counter
}

func NewInventory() *Inventory {
	return &Inventory{counters: make(map[trainKey]*counter)}
}

// Allocate decides the status of a booking for passengers on train and
// consumes seats (or waitlist positions) accordingly. A nil train is
// always waitlisted and not tracked.
func (inv *Inventory) Allocate(train *catalog.Train, passengers int) Allocation {
	if train == nil {
		return Waiting
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	c := inv.seed(train)
	if c.available != nil && *c.available >= passengers {
		*c.available -= passengers
		return Confirmed
	}
	c.waiting += passengers
	return Waiting
}

// Release returns what a cancelled booking on train held
func (inv *Inventory) Release(train *catalog.Train, passengers int, allocation Allocation) {
	if train == nil {
		return
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	c, ok := inv.counters[keyOf(train)]
	if !ok {
		return
	}
	switch allocation {
	case Confirmed:
		if c.available != nil {
			*c.available = min(*c.available+passengers, c.total)
		}
	case Waiting:
		c.waiting = max(c.waiting-passengers, 0)
	}
}

// Overlay replaces the snapshot counts on train with the tracked ones
func (inv *Inventory) Overlay(train *catalog.Train) {
	if train == nil {
		return
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	c, ok := inv.counters[keyOf(train)]
	if !ok {
		return
	}
	if c.available != nil {
		v := *c.available
		train.AvailableSeats = &v
	}
	w := c.waiting
	train.WaitingList = &w
}

func (inv *Inventory) seed(train *catalog.Train) *counter {
	key := keyOf(train)
	if c, ok := inv.counters[key]; ok {
		return c
	}
	c := &counter{total: train.TotalSeats}
	if train.AvailableSeats != nil {
		v := *train.AvailableSeats
		c.available = &v
	}
	if train.WaitingList != nil {
		c.waiting = *train.WaitingList
	}
	inv.counters[key] = c
	return c
}
