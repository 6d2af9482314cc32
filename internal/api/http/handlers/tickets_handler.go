package handlers

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/upk-it/helpdesk/internal/api/dto"
	"github.com/upk-it/helpdesk/internal/auth"
	"github.com/upk-it/helpdesk/internal/domain"
	"github.com/upk-it/helpdesk/internal/service"
	apperrors "github.com/upk-it/helpdesk/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No autenticado")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	detail, err := h.service.Create(c.UserContext(), principal, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Area:        req.Area,
		Priority:    req.Priority,
		Type:        req.Type,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketDetail(detail)})
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No autenticado")
	}
	tickets, err := h.service.List(c.UserContext(), principal)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	detail, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(detail)})
}

// Update PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No autenticado")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TicketUpdateInput{
		Status:      req.Status,
		AssigneeSet: req.AssigneeID.Set,
		AssigneeID:  req.AssigneeID.Value,
	}
	if req.Comment != nil {
		input.Comment = *req.Comment
	}

	detail, err := h.service.Update(c.UserContext(), principal, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(detail)})
}

// UploadAttachment POST /tickets/:id/attachments.
func (h *TicketsHandler) UploadAttachment(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("No se recibió archivo", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("No se recibió archivo", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	attachment, err := h.service.AddAttachment(c.UserContext(), c.Params("id"), service.AttachmentUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": attachmentResponse(attachment)})
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:          ticket.ID,
		Number:      ticket.Number,
		Title:       ticket.Title,
		Area:        ticket.Area,
		Priority:    ticket.Priority,
		Type:        ticket.Type,
		Status:      ticket.Status,
		RequesterID: ticket.RequesterID,
		AssigneeID:  ticket.AssigneeID,
		DueAt:       ticket.DueAt,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}

func ticketDetail(detail *service.TicketDetail) dto.TicketDetailResponse {
	resp := dto.TicketDetailResponse{
		TicketSummary: ticketSummary(&detail.Ticket),
		Description:   detail.Ticket.Description,
		Events:        make([]dto.TicketEventResponse, 0, len(detail.Events)),
		Attachments:   make([]dto.TicketAttachmentResponse, 0, len(detail.Attachments)),
	}
	if detail.Requester != nil {
		u := userResponse(detail.Requester)
		resp.Requester = &u
	}
	if detail.Assignee != nil {
		u := userResponse(detail.Assignee)
		resp.Assignee = &u
	}
	for _, event := range detail.Events {
		resp.Events = append(resp.Events, dto.TicketEventResponse{
			ID:          event.ID,
			At:          event.At,
			Action:      event.Action,
			Description: event.Description,
			By:          event.By,
		})
	}
	for i := range detail.Attachments {
		resp.Attachments = append(resp.Attachments, attachmentResponse(&detail.Attachments[i]))
	}
	if detail.Ticket.DueAt != nil {
		now := time.Now()
		left := domain.HoursLeft(*detail.Ticket.DueAt, now)
		band := domain.SLABandFor(*detail.Ticket.DueAt, now)
		resp.HoursLeft = &left
		resp.SLAStatus = &band
	}
	return resp
}

func attachmentResponse(attachment *domain.TicketAttachment) dto.TicketAttachmentResponse {
	return dto.TicketAttachmentResponse{
		ID:         attachment.ID,
		FileName:   attachment.FileName,
		FileType:   attachment.FileType,
		FileSize:   attachment.FileSize,
		URL:        attachment.URL,
		UploadedAt: attachment.UploadedAt,
	}
}
