package ui

import (
	"suggestbox/internal/eventbus"
)

// EventMsg wraps a domain event forwarded from the bus
type EventMsg struct {
	Event eventbus.DomainEvent
}

// clearStatusMsg resets the status line after a delay
type clearStatusMsg struct {
	gen int
}
