package state

import "time"

// BlinkWindow is how long a warn or error flash stays visible
const BlinkWindow = 250 * time.Millisecond

// Signal is a transient UI severity
type Signal int

const (
	SignalNone Signal = iota
	SignalWarn
	SignalError
)

func (s Signal) String() string {
	switch s {
	case SignalWarn:
		return "warn"
	case SignalError:
		return "error"
	default:
		return "none"
	}
}

// Blink records when the last warn and error were raised
type Blink struct {
	warnAt time.Time
	errAt  time.Time
	window time.Duration
}

// NewBlink creates a blink state with the default window
func NewBlink() *Blink {
	return &Blink{window: BlinkWindow}
}

// Window is the flash duration
func (b *Blink) Window() time.Duration { return b.window }

// Raise records s at now
func (b *Blink) Raise(s Signal, now time.Time) {
	switch s {
	case SignalWarn:
		b.warnAt = now
	case SignalError:
		b.errAt = now
	}
}

// Active returns the signal visible at now. Error wins over warn.
func (b *Blink) Active(now time.Time) Signal {
	if b.live(b.errAt, now) {
		return SignalError
	}
	if b.live(b.warnAt, now) {
		return SignalWarn
	}
	return SignalNone
}

func (b *Blink) live(at, now time.Time) bool {
	return !at.IsZero() && now.Sub(at) < b.window
}
