package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/upk-it/helpdesk/internal/domain"
	"github.com/upk-it/helpdesk/internal/events"
	"github.com/upk-it/helpdesk/internal/repository"
	apperrors "github.com/upk-it/helpdesk/pkg/util"
)

// FileStore persists uploaded bytes and returns their public URL.
type FileStore interface {
	Save(originalName string, data []byte) (string, error)
}

// TicketService coordinates the ticket lifecycle: creation with SLA due
// time and sequential number, role-scoped listing, updates with audit
// events, and attachment uploads.
type TicketService struct {
	tickets     repository.TicketRepository
	ticketEvts  repository.TicketEventRepository
	attachments repository.AttachmentRepository
	users       repository.UserRepository
	store       FileStore
	dispatcher  events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	EventRepo      repository.TicketEventRepository
	AttachmentRepo repository.AttachmentRepository
	UserRepo       repository.UserRepository
	Store          FileStore
	Dispatcher     events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		ticketEvts:  deps.EventRepo,
		attachments: deps.AttachmentRepo,
		users:       deps.UserRepo,
		store:       deps.Store,
		dispatcher:  deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload. All fields are
// required.
type TicketCreateInput struct {
	Title       string
	Description string
	Area        string
	Priority    domain.TicketPriority
	Type        domain.TicketType
}

// TicketUpdateInput describes a PATCH. AssigneeSet distinguishes "assign to
// nobody" from "leave assignment alone".
type TicketUpdateInput struct {
	Status      *domain.TicketStatus
	AssigneeSet bool
	AssigneeID  *string
	Comment     string
}

// TicketDetail is a ticket with its related records resolved.
type TicketDetail struct {
	Ticket      domain.Ticket
	Requester   *domain.User
	Assignee    *domain.User
	Events      []domain.TicketEvent
	Attachments []domain.TicketAttachment
}

// Create registers a ticket for a requester. The due time is fixed here
// from the priority SLA and never recomputed.
func (s *TicketService) Create(ctx context.Context, actor *domain.User, input TicketCreateInput) (*TicketDetail, error) {
	if actor.Role != domain.RoleRequester {
		return nil, apperrors.NewForbidden("Solo los solicitantes pueden crear tickets")
	}
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.Area) == "" ||
		input.Priority == "" || input.Type == "" {
		return nil, apperrors.NewValidationError("Faltan campos", nil)
	}
	if !domain.ValidTicketPriority(input.Priority) {
		return nil, apperrors.NewValidationError("Prioridad inválida", nil)
	}
	if !domain.ValidTicketType(input.Type) {
		return nil, apperrors.NewValidationError("Tipo inválido", nil)
	}

	now := time.Now()
	dueAt := domain.DueAtFor(input.Priority, now)
	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Area:        strings.TrimSpace(input.Area),
		Priority:    input.Priority,
		Type:        input.Type,
		Status:      domain.TicketStatusAbierto,
		RequesterID: &actor.ID,
		DueAt:       &dueAt,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	event := &domain.TicketEvent{
		TicketID: ticket.ID,
		Action:   domain.EventActionCreated,
		By:       actor.ActorName(),
	}
	if err := s.ticketEvts.Create(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Number:         ticket.Number,
			Title:          ticket.Title,
			RequesterName:  actor.Name,
			RequesterEmail: actor.Email,
		},
	})

	return s.Get(ctx, ticket.ID)
}

// List returns tickets visible to the actor, newest first. Admins see all,
// resolvers their queue plus the unassigned pool, requesters their own.
func (s *TicketService) List(ctx context.Context, actor *domain.User) ([]domain.Ticket, error) {
	var scope repository.TicketScope
	switch actor.Role {
	case domain.RoleAdmin:
		scope = repository.ScopeAll()
	case domain.RoleResolver:
		scope = repository.ScopeResolver(actor.ID)
	default:
		scope = repository.ScopeRequester(actor.ID)
	}

	tickets, err := s.tickets.List(ctx, scope)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Get returns the full detail: requester, assignee, events ascending by
// time and attachments ascending by upload time.
func (s *TicketService) Get(ctx context.Context, id string) (*TicketDetail, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	detail := &TicketDetail{Ticket: *ticket}
	if ticket.RequesterID != nil {
		if user, err := s.users.GetByID(ctx, *ticket.RequesterID); err == nil {
			detail.Requester = user
		}
	}
	if ticket.AssigneeID != nil {
		if user, err := s.users.GetByID(ctx, *ticket.AssigneeID); err == nil {
			detail.Assignee = user
		}
	}

	if detail.Events, err = s.ticketEvts.ListByTicket(ctx, ticket.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	if detail.Attachments, err = s.attachments.ListByTicket(ctx, ticket.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return detail, nil
}

// Update applies status/assignee/comment changes and appends exactly one
// audit event describing them. Any authenticated account may update any
// ticket; no transition graph is enforced.
func (s *TicketService) Update(ctx context.Context, actor *domain.User, id string, input TicketUpdateInput) (*TicketDetail, error) {
	if input.Status == nil && !input.AssigneeSet && strings.TrimSpace(input.Comment) == "" {
		return nil, apperrors.NewValidationError("No hay cambios para aplicar", nil)
	}
	if input.Status != nil && !domain.ValidTicketStatus(*input.Status) {
		return nil, apperrors.NewValidationError("Estado inválido", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	var actions []string
	if input.Status != nil {
		ticket.Status = *input.Status
		actions = append(actions, "Estado cambiado a "+input.Status.Display())
	}
	if input.AssigneeSet {
		ticket.AssigneeID = input.AssigneeID
		if input.AssigneeID != nil {
			actions = append(actions, domain.EventActionReassigned)
		} else {
			actions = append(actions, domain.EventActionUnassigned)
		}
	}

	actionText := domain.EventActionGeneric
	if len(actions) > 0 {
		actionText = strings.Join(actions, " · ")
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	event := &domain.TicketEvent{
		TicketID: ticket.ID,
		Action:   actionText,
		By:       actor.ActorName(),
	}
	if comment := strings.TrimSpace(input.Comment); comment != "" {
		event.Description = &comment
	}
	if err := s.ticketEvts.Create(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}

	message := actionText
	if c := strings.TrimSpace(input.Comment); c != "" {
		message = c
	}
	requesterEmail := ""
	if ticket.RequesterID != nil {
		if requester, err := s.users.GetByID(ctx, *ticket.RequesterID); err == nil {
			requesterEmail = requester.Email
		}
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Payload: events.TicketUpdatedPayload{
			Number:         ticket.Number,
			Title:          ticket.Title,
			RequesterEmail: requesterEmail,
			Message:        message,
		},
	})

	return s.Get(ctx, ticket.ID)
}

// AttachmentUpload carries one uploaded file.
type AttachmentUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// AddAttachment stores the bytes under a timestamped sanitized name and
// records the metadata. The original filename is preserved for display.
func (s *TicketService) AddAttachment(ctx context.Context, ticketID string, upload AttachmentUpload) (*domain.TicketAttachment, error) {
	if len(upload.Data) == 0 {
		return nil, apperrors.NewValidationError("No se recibió archivo", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	url, err := s.store.Save(upload.FileName, upload.Data)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	fileType := upload.ContentType
	if fileType == "" {
		fileType = "application/octet-stream"
	}
	attachment := &domain.TicketAttachment{
		TicketID: ticket.ID,
		FileName: upload.FileName,
		FileType: fileType,
		FileSize: int64(len(upload.Data)),
		URL:      url,
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return attachment, nil
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
