package entity

import "fmt"

// Invincibility is an optional countdown of ticks during which collisions do
// not cost life. The zero value is "none". A countdown that reaches zero is
// the same as none.
type Invincibility struct {
	remaining int
	set       bool
}

// NoInvincibility is the vulnerable state.
var NoInvincibility = Invincibility{}

// InvincibleFor returns a countdown of n ticks; n <= 0 yields NoInvincibility.
func InvincibleFor(n int) Invincibility {
	if n <= 0 {
		return NoInvincibility
	}
	return Invincibility{remaining: n, set: true}
}

// Active reports whether collisions are currently ignored.
func (i Invincibility) Active() bool {
	return i.set && i.remaining > 0
}

// Remaining returns the ticks left, 0 when vulnerable.
func (i Invincibility) Remaining() int {
	if !i.Active() {
		return 0
	}
	return i.remaining
}

// Tick counts down by one.
func (i Invincibility) Tick() Invincibility {
	if !i.Active() {
		return NoInvincibility
	}
	return InvincibleFor(i.remaining - 1)
}

func (i Invincibility) String() string {
	if !i.Active() {
		return "none"
	}
	return fmt.Sprintf("%d ticks", i.remaining)
}
