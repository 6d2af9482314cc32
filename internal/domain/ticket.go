package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets. Any status may be
// set from any other; there is no enforced transition graph.
type TicketStatus string

const (
	TicketStatusAbierto   TicketStatus = "Abierto"
	TicketStatusEnProceso TicketStatus = "En_proceso"
	TicketStatusEnEspera  TicketStatus = "En_espera"
	TicketStatusResuelto  TicketStatus = "Resuelto"
	TicketStatusCerrado   TicketStatus = "Cerrado"
)

// ValidTicketStatus reports whether the value is part of the status enum.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusAbierto, TicketStatusEnProceso, TicketStatusEnEspera,
		TicketStatusResuelto, TicketStatusCerrado:
		return true
	}
	return false
}

// Display renders a status for humans ("En_proceso" -> "En proceso").
func (s TicketStatus) Display() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// OpenStatuses and ClosedStatuses partition the enum for metrics rollups.
var (
	OpenStatuses   = []TicketStatus{TicketStatusAbierto, TicketStatusEnProceso, TicketStatusEnEspera}
	ClosedStatuses = []TicketStatus{TicketStatusResuelto, TicketStatusCerrado}
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityBaja  TicketPriority = "Baja"
	TicketPriorityMedia TicketPriority = "Media"
	TicketPriorityAlta  TicketPriority = "Alta"
)

// ValidTicketPriority reports whether the value is part of the priority enum.
func ValidTicketPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityBaja, TicketPriorityMedia, TicketPriorityAlta:
		return true
	}
	return false
}

// TicketType enumerates request categories.
type TicketType string

const (
	TicketTypeIncidente TicketType = "Incidente"
	TicketTypeSolicitud TicketType = "Solicitud"
	TicketTypeCambio    TicketType = "Cambio"
)

// ValidTicketType reports whether the value is part of the type enum.
func ValidTicketType(t TicketType) bool {
	switch t {
	case TicketTypeIncidente, TicketTypeSolicitud, TicketTypeCambio:
		return true
	}
	return false
}

// Ticket is the aggregate for helpdesk requests. Number is the human-facing
// identifier ("TIT-00001"); DueAt is fixed at creation from the priority SLA
// and never recomputed.
type Ticket struct {
	ID          string
	Number      string
	Title       string
	Description string
	Area        string
	Priority    TicketPriority
	Type        TicketType
	Status      TicketStatus
	RequesterID *string
	AssigneeID  *string
	DueAt       *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const ticketNumberPrefix = "TIT"

// FormatTicketNumber renders a sequence value as a human-facing number,
// zero-padded to five digits.
func FormatTicketNumber(seq int64) string {
	return fmt.Sprintf("%s-%05d", ticketNumberPrefix, seq)
}

// ParseTicketNumber recovers the sequence value from a formatted number.
func ParseTicketNumber(number string) (int64, error) {
	rest, ok := strings.CutPrefix(number, ticketNumberPrefix+"-")
	if !ok {
		return 0, fmt.Errorf("malformed ticket number %q", number)
	}
	seq, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed ticket number %q: %w", number, err)
	}
	return seq, nil
}
