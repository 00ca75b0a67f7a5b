package container

import (
	"fmt"
	"math"
)

// Container is a capacity-bounded accumulator.
//
// For capacity >= 0 the level always stays within [0, capacity]. A negative
// capacity is accepted by New but the bound is then undefined; Registry
// refuses such values before they reach a Container.
//
// The zero value is an empty container with zero capacity.
type Container struct {
	capacity float64
	level    float64
}

// New returns a container with the given capacity and a level of
// initialLevel clamped into [0, capacity]. Excess is discarded silently.
func New(capacity, initialLevel float64) Container {
	return Container{
		capacity: capacity,
		level:    math.Min(math.Max(initialLevel, 0), capacity),
	}
}

// Capacity returns the maximum quantity the container holds.
func (c Container) Capacity() float64 { return c.capacity }

// Level returns the current quantity held.
func (c Container) Level() float64 { return c.level }

// FreeSpace returns capacity minus level.
func (c Container) FreeSpace() float64 { return c.capacity - c.level }

// Deposit adds up to amount and returns the quantity actually added.
// Non-positive and NaN amounts are ignored. When the amount does not fit the
// container is filled exactly to capacity.
func (c *Container) Deposit(amount float64) float64 {
	if !(amount > 0) {
		return 0
	}
	if free := c.FreeSpace(); amount > free {
		c.level = c.capacity
		return free
	}
	c.level += amount
	return amount
}

// Withdraw removes up to amount and returns the quantity actually removed.
// Non-positive and NaN amounts are ignored. Asking for more than the level
// drains the container to zero.
func (c *Container) Withdraw(amount float64) float64 {
	if !(amount > 0) {
		return 0
	}
	if amount > c.level {
		taken := c.level
		c.level = 0
		return taken
	}
	c.level -= amount
	return amount
}

// String implements fmt.Stringer.
func (c Container) String() string {
	return fmt.Sprintf("level = %g, free space = %g", c.level, c.FreeSpace())
}
