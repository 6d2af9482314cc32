package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload carries what the creation notification needs.
type TicketCreatedPayload struct {
	Number         string `json:"number"`
	Title          string `json:"title"`
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
}

// TicketUpdatedPayload carries what the update notification needs. Message
// is the comment when present, otherwise the audit action label.
type TicketUpdatedPayload struct {
	Number         string `json:"number"`
	Title          string `json:"title"`
	RequesterEmail string `json:"requester_email"`
	Message        string `json:"message"`
}
