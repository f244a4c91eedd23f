package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// TicketService coordinates ticket workflows. Every operation consults the
// authorization guard before touching the store; role and ownership rules
// live nowhere else.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles requirements for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{tickets: deps.TicketRepo, dispatcher: deps.Dispatcher}
}

// TicketCreateInput describes ticket creation payload. Status may be any
// known value; it defaults to OPEN when empty.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	Status      domain.TicketStatus
	DueDate     *time.Time
}

// TicketEditInput describes content edits. Empty strings keep the stored
// value; a nil DueDate keeps the stored due date.
type TicketEditInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	DueDate     *time.Time
}

// TicketListFilter describes listing parameters.
type TicketListFilter struct {
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	SearchTerm *string
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

// Create opens a new ticket owned by the caller. The ticket number is
// generated here, once, and never changes afterwards.
//
// Creating a ticket directly in RESOLVED or CLOSED does not stamp the
// lifecycle timestamps; only a status transition does.
func (s *TicketService) Create(ctx context.Context, identity *auth.Identity, input TicketCreateInput) (*domain.Ticket, error) {
	if decision := auth.Authorize(identity, auth.OpCreateTicket, 0); !decision.Allowed {
		return nil, auth.DecisionError(decision)
	}

	ticket := &domain.Ticket{
		TicketNumber: generateTicketNumber(),
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Priority:     input.Priority,
		Status:       input.Status,
		CreatedBy:    identity.UserID,
		DueDate:      input.DueDate,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if ticket.Status == "" {
		ticket.Status = domain.TicketStatusOpen
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventTicketCreated,
		ActorID: identity.UserID,
		Payload: events.TicketCreatedPayload{
			TicketID:     ticket.ID,
			TicketNumber: ticket.TicketNumber,
			Priority:     ticket.Priority,
			Status:       ticket.Status,
			Title:        ticket.Title,
		},
	})
	return ticket, nil
}

// ListAll returns tickets across all owners with the total match count.
// Admin only.
func (s *TicketService) ListAll(ctx context.Context, identity *auth.Identity, filter TicketListFilter) ([]domain.Ticket, int64, error) {
	if decision := auth.Authorize(identity, auth.OpListAllTickets, 0); !decision.Allowed {
		return nil, 0, auth.DecisionError(decision)
	}
	return s.list(ctx, repoFilter(filter, nil))
}

// ListMine returns the caller's own tickets with the total match count.
func (s *TicketService) ListMine(ctx context.Context, identity *auth.Identity, filter TicketListFilter) ([]domain.Ticket, int64, error) {
	if decision := auth.Authorize(identity, auth.OpListOwnTickets, 0); !decision.Allowed {
		return nil, 0, auth.DecisionError(decision)
	}
	owner := identity.UserID
	return s.list(ctx, repoFilter(filter, &owner))
}

// Get fetches one ticket. Any authenticated user may view any ticket by id.
func (s *TicketService) Get(ctx context.Context, identity *auth.Identity, id int64) (*domain.Ticket, error) {
	if decision := auth.Authorize(identity, auth.OpViewTicket, 0); !decision.Allowed {
		return nil, auth.DecisionError(decision)
	}
	return s.fetch(ctx, id)
}

// Edit updates content fields (title, description, priority, due date) for
// the owner or an admin. Status is never touched here.
func (s *TicketService) Edit(ctx context.Context, identity *auth.Identity, id int64, input TicketEditInput) (*domain.Ticket, error) {
	ticket, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if decision := auth.Authorize(identity, auth.OpEditTicket, ticket.CreatedBy); !decision.Allowed {
		return nil, auth.DecisionError(decision)
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		ticket.Title = title
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		ticket.Description = desc
	}
	if input.Priority != "" {
		ticket.Priority = input.Priority
	}
	if input.DueDate != nil {
		ticket.DueDate = input.DueDate
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// ChangeStatus transitions a ticket and applies the lifecycle side effects.
// Admin only; the engine itself allows any from-to pair.
func (s *TicketService) ChangeStatus(ctx context.Context, identity *auth.Identity, id int64, next domain.TicketStatus) (*domain.Ticket, error) {
	if decision := auth.Authorize(identity, auth.OpChangeStatus, 0); !decision.Allowed {
		return nil, auth.DecisionError(decision)
	}
	ticket, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	ticket.ApplyStatus(next, time.Now())
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventTicketStatusChanged,
		ActorID: identity.UserID,
		Payload: events.TicketStatusChangedPayload{
			TicketID:  ticket.ID,
			OldStatus: oldStatus,
			NewStatus: next,
		},
	})
	return ticket, nil
}

// Delete removes a ticket permanently for the owner or an admin.
func (s *TicketService) Delete(ctx context.Context, identity *auth.Identity, id int64) error {
	ticket, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if decision := auth.Authorize(identity, auth.OpDeleteTicket, ticket.CreatedBy); !decision.Allowed {
		return auth.DecisionError(decision)
	}

	if err := s.tickets.Delete(ctx, ticket.ID); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventTicketDeleted,
		ActorID: identity.UserID,
		Payload: events.TicketDeletedPayload{
			TicketID:     ticket.ID,
			TicketNumber: ticket.TicketNumber,
		},
	})
	return nil
}

func (s *TicketService) fetch(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) list(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, int64, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tickets.CountWithFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func repoFilter(filter TicketListFilter, owner *int64) repository.TicketFilter {
	return repository.TicketFilter{
		CreatedBy:  owner,
		Statuses:   filter.Statuses,
		Priorities: filter.Priorities,
		SearchTerm: filter.SearchTerm,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
}

func generateTicketNumber() string {
	return "TICKET-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
