package auth

import "github.com/spec-kit/ticket-tracker/internal/domain"

// Operation names an action the guard can decide on.
type Operation string

const (
	OpListAllTickets Operation = "list_all_tickets"
	OpListOwnTickets Operation = "list_own_tickets"
	OpViewTicket     Operation = "view_ticket"
	OpCreateTicket   Operation = "create_ticket"
	OpEditTicket     Operation = "edit_ticket"
	OpChangeStatus   Operation = "change_ticket_status"
	OpDeleteTicket   Operation = "delete_ticket"
)

// DenyReason explains a denied decision.
type DenyReason string

const (
	DenyUnauthenticated  DenyReason = "unauthenticated"
	DenyInsufficientRole DenyReason = "insufficient_role"
	DenyNotOwner         DenyReason = "not_owner"
)

// Decision is the guard's verdict.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

type policy struct {
	roles          map[domain.RoleName]struct{}
	ownershipScope bool
}

func roleSet(roles ...domain.RoleName) map[domain.RoleName]struct{} {
	set := make(map[domain.RoleName]struct{}, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

// The single decision table. Viewing any ticket by id is open to every
// authenticated user while status changes are admin-only and edits are
// owner-or-admin; that asymmetry is deliberate policy.
var policies = map[Operation]policy{
	OpListAllTickets: {roles: roleSet(domain.RoleAdmin)},
	OpListOwnTickets: {roles: roleSet(domain.RoleUser, domain.RoleAdmin)},
	OpViewTicket:     {roles: roleSet(domain.RoleUser, domain.RoleAdmin)},
	OpCreateTicket:   {roles: roleSet(domain.RoleUser, domain.RoleAdmin)},
	OpEditTicket:     {roles: roleSet(domain.RoleUser, domain.RoleAdmin), ownershipScope: true},
	OpChangeStatus:   {roles: roleSet(domain.RoleAdmin)},
	OpDeleteTicket:   {roles: roleSet(domain.RoleUser, domain.RoleAdmin), ownershipScope: true},
}

// Authorize decides whether identity may perform op. For ownership-scoped
// operations resourceOwnerID is the ticket creator; it is ignored otherwise.
// The decision is a pure function of its inputs.
func Authorize(identity *Identity, op Operation, resourceOwnerID int64) Decision {
	if identity == nil {
		return deny(DenyUnauthenticated)
	}
	p, known := policies[op]
	if !known {
		return deny(DenyInsufficientRole)
	}
	if _, ok := p.roles[identity.Role]; !ok {
		return deny(DenyInsufficientRole)
	}
	if p.ownershipScope && identity.Role != domain.RoleAdmin && identity.UserID != resourceOwnerID {
		return deny(DenyNotOwner)
	}
	return allow()
}
