package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// CreateTicketRequest payload. Status is optional; the reference accepts a
// caller-supplied initial status as long as it is a known value.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	Status      domain.TicketStatus   `json:"status"`
	DueDate     *time.Time            `json:"due_date"`
}

// Validate checks creation invariants.
func (r CreateTicketRequest) Validate() error {
	var messages []string
	title := strings.TrimSpace(r.Title)
	if title == "" {
		messages = append(messages, "title is required")
	}
	if len(title) > 200 {
		messages = append(messages, "title must be at most 200 characters")
	}
	if strings.TrimSpace(r.Description) == "" {
		messages = append(messages, "description is required")
	}
	if r.Priority != "" && !r.Priority.Valid() {
		messages = append(messages, "unknown priority")
	}
	if r.Status != "" && !r.Status.Valid() {
		messages = append(messages, "unknown status")
	}
	if len(messages) > 0 {
		return apperrors.NewValidationError("invalid ticket input", map[string]any{"errors": messages})
	}
	return nil
}

// UpdateTicketRequest payload for content edits. Empty fields keep their
// stored values; status is deliberately absent.
type UpdateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	DueDate     *time.Time            `json:"due_date"`
}

// Validate checks edit invariants.
func (r UpdateTicketRequest) Validate() error {
	var messages []string
	if len(strings.TrimSpace(r.Title)) > 200 {
		messages = append(messages, "title must be at most 200 characters")
	}
	if r.Priority != "" && !r.Priority.Valid() {
		messages = append(messages, "unknown priority")
	}
	if len(messages) > 0 {
		return apperrors.NewValidationError("invalid ticket input", map[string]any{"errors": messages})
	}
	return nil
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// Validate rejects unknown status values.
func (r UpdateStatusRequest) Validate() error {
	if !r.Status.Valid() {
		return apperrors.NewValidationError("unknown status", nil)
	}
	return nil
}

// TicketResponse carries full ticket state.
type TicketResponse struct {
	ID           int64                 `json:"id"`
	TicketNumber string                `json:"ticket_number"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Priority     domain.TicketPriority `json:"priority"`
	Status       domain.TicketStatus   `json:"status"`
	CreatedBy    int64                 `json:"created_by"`
	DueDate      *time.Time            `json:"due_date"`
	ResolvedAt   *time.Time            `json:"resolved_at"`
	ClosedAt     *time.Time            `json:"closed_at"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// Pagination describes list paging metadata.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

// TicketListResponse wraps a page of tickets.
type TicketListResponse struct {
	Tickets    []TicketResponse `json:"tickets"`
	Pagination Pagination       `json:"pagination"`
}
