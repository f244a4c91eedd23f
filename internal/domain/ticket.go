package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// Valid reports whether the status is a known value.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Valid reports whether the priority is a known value.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// Ticket is the aggregate for tracked requests. TicketNumber is assigned once
// at creation and never changes.
type Ticket struct {
	ID           int64
	TicketNumber string
	Title        string
	Description  string
	Priority     TicketPriority
	Status       TicketStatus
	CreatedBy    int64
	DueDate      *time.Time
	ResolvedAt   *time.Time
	ClosedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ApplyStatus moves the ticket to the given status and applies the lifecycle
// side effects. Any status may be set from any other status; who may request
// the change is decided by the authorization guard, not here.
//
// ResolvedAt and ClosedAt are historical markers: entering RESOLVED or CLOSED
// stamps them (re-entry refreshes the stamp), and leaving never clears them.
func (t *Ticket) ApplyStatus(next TicketStatus, now time.Time) {
	switch next {
	case TicketStatusResolved:
		resolvedAt := now
		t.ResolvedAt = &resolvedAt
	case TicketStatusClosed:
		closedAt := now
		t.ClosedAt = &closedAt
	}
	t.Status = next
	t.UpdatedAt = now
}
