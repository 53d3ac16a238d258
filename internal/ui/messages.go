package ui

import (
	"time"

	"cratui/internal/eventbus"
	"cratui/internal/ui/state"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer so idle frames still run a draw pass.
// gen identifies the tick chain that scheduled it.
type tickMsg struct {
	gen int
	at  time.Time
}

// fetchReadyMsg wakes the loop once the pending fetch has resolved
type fetchReadyMsg struct {
	handle *state.Handle
}

// clearBlinkMsg redraws after a warn or error flash has expired
type clearBlinkMsg struct{}

// pagerDoneMsg contains the result of a pager command
type pagerDoneMsg struct {
	err error
}

// pauseRenderingMsg signals that an external pager owns the terminal
type pauseRenderingMsg struct{}

