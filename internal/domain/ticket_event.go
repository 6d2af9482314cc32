package domain

import "time"

// Audit action labels. Status changes get the rendered status appended.
const (
	EventActionCreated    = "Ticket creado"
	EventActionReassigned = "Ticket reasignado"
	EventActionUnassigned = "Ticket dejado sin asignar"
	EventActionGeneric    = "Actualización de ticket"
)

// TicketEvent is an append-only audit entry. Created on ticket creation and
// on every update; never modified or deleted.
type TicketEvent struct {
	ID          string
	TicketID    string
	At          time.Time
	Action      string
	Description *string
	By          string
}
