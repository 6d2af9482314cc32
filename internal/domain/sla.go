package domain

import (
	"math"
	"time"
)

// DueHoursFor maps a priority to its SLA window in hours. Unrecognized
// priorities get a 48h fallback.
func DueHoursFor(priority TicketPriority) int {
	switch priority {
	case TicketPriorityAlta:
		return 8
	case TicketPriorityMedia:
		return 24
	case TicketPriorityBaja:
		return 72
	default:
		return 48
	}
}

// DueAtFor computes the due time for a ticket created at the given instant.
func DueAtFor(priority TicketPriority, createdAt time.Time) time.Time {
	return createdAt.Add(time.Duration(DueHoursFor(priority)) * time.Hour)
}

// SLABand classifies remaining time for display. Derived on every read,
// never persisted.
type SLABand string

const (
	SLAEnTiempo  SLABand = "en_tiempo"
	SLAPorVencer SLABand = "por_vencer"
	SLAVencido   SLABand = "vencido"
)

// HoursLeft returns the whole hours remaining until the due time, rounded
// up. Negative means the SLA is breached.
func HoursLeft(dueAt, now time.Time) int {
	return int(math.Ceil(dueAt.Sub(now).Hours()))
}

// SLABandFor classifies a due time: negative hours left is breached, four or
// fewer is the warning band, anything beyond is healthy.
func SLABandFor(dueAt, now time.Time) SLABand {
	left := HoursLeft(dueAt, now)
	switch {
	case left < 0:
		return SLAVencido
	case left <= 4:
		return SLAPorVencer
	default:
		return SLAEnTiempo
	}
}
