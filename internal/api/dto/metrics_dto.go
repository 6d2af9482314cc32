package dto

import (
	"time"

	"github.com/upk-it/helpdesk/internal/domain"
)

// MetricsResponse is the admin dashboard payload.
type MetricsResponse struct {
	RangeDays       int                     `json:"rangeDays"`
	From            time.Time               `json:"from"`
	To              time.Time               `json:"to"`
	TotalTickets    int                     `json:"totalTickets"`
	ResolvedTickets int                     `json:"resolvedTickets"`
	OpenTickets     int                     `json:"openTickets"`
	SLABreached     int                     `json:"slaBreached"`
	ByStatus        []StatusCountResponse   `json:"byStatus"`
	ByPriority      []PriorityCountResponse `json:"byPriority"`
	ByArea          []AreaCountResponse     `json:"byArea"`
	ByResolver      []ResolverCountResponse `json:"byResolver"`
}

// StatusCountResponse is one bucket of the status rollup.
type StatusCountResponse struct {
	Status domain.TicketStatus `json:"status"`
	Count  int                 `json:"count"`
}

// PriorityCountResponse is one bucket of the priority rollup.
type PriorityCountResponse struct {
	Priority domain.TicketPriority `json:"priority"`
	Count    int                   `json:"count"`
}

// AreaCountResponse is one bucket of the area rollup.
type AreaCountResponse struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
}

// ResolverCountResponse is one bucket of the per-resolver rollup.
type ResolverCountResponse struct {
	ID    *string `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Count int     `json:"count"`
}
