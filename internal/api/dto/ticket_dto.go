package dto

import (
	"time"

	"github.com/upk-it/helpdesk/internal/domain"
)

// CreateTicketRequest payload. All fields are required.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Area        string                `json:"area"`
	Priority    domain.TicketPriority `json:"priority"`
	Type        domain.TicketType     `json:"type"`
}

// UpdateTicketRequest payload. assigneeId may be a user id, an explicit
// null (unassign) or absent (untouched).
type UpdateTicketRequest struct {
	Status     *domain.TicketStatus `json:"status"`
	AssigneeID OptionalString       `json:"assigneeId"`
	Comment    *string              `json:"comment"`
}

// TicketSummary is the list shape.
type TicketSummary struct {
	ID          string                `json:"id"`
	Number      string                `json:"number"`
	Title       string                `json:"title"`
	Area        string                `json:"area"`
	Priority    domain.TicketPriority `json:"priority"`
	Type        domain.TicketType     `json:"type"`
	Status      domain.TicketStatus   `json:"status"`
	RequesterID *string               `json:"requesterId"`
	AssigneeID  *string               `json:"assigneeId"`
	DueAt       *time.Time            `json:"dueAt"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// TicketDetailResponse is the full shape with related records and the
// derived SLA display fields.
type TicketDetailResponse struct {
	TicketSummary
	Description string                     `json:"description"`
	Requester   *UserResponse              `json:"requester"`
	Assignee    *UserResponse              `json:"assignee"`
	Events      []TicketEventResponse      `json:"events"`
	Attachments []TicketAttachmentResponse `json:"attachments"`
	HoursLeft   *int                       `json:"hoursLeft"`
	SLAStatus   *domain.SLABand            `json:"slaStatus"`
}

// TicketEventResponse is one audit entry.
type TicketEventResponse struct {
	ID          string    `json:"id"`
	At          time.Time `json:"at"`
	Action      string    `json:"action"`
	Description *string   `json:"description"`
	By          string    `json:"by"`
}

// TicketAttachmentResponse is one attachment record.
type TicketAttachmentResponse struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	FileType   string    `json:"fileType"`
	FileSize   int64     `json:"fileSize"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}
