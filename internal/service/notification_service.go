package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/upk-it/helpdesk/internal/events"
	"github.com/upk-it/helpdesk/internal/mailer"
)

// NotificationService turns ticket events into requester emails. Send
// failures are logged and discarded; notification delivery has no guarantee.
type NotificationService struct {
	dispatcher events.Dispatcher
	mail       *mailer.Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mail *mailer.Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, mail: mail, logger: logger}
}

// RegisterHandlers subscribes to ticket events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketUpdated, n.handleTicketUpdated)
}

func (n *NotificationService) handleTicketCreated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok || payload.RequesterEmail == "" {
		return nil
	}
	if err := n.mail.SendTicketCreated(payload.RequesterEmail, payload.Number, payload.Title, payload.RequesterName, event.TicketID); err != nil {
		n.logger.Debug("ticket created mail failed",
			zap.String("ticket_id", event.TicketID), zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleTicketUpdated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketUpdatedPayload)
	if !ok || payload.RequesterEmail == "" {
		return nil
	}
	if err := n.mail.SendTicketUpdated(payload.RequesterEmail, payload.Number, payload.Title, payload.Message, event.TicketID); err != nil {
		n.logger.Debug("ticket updated mail failed",
			zap.String("ticket_id", event.TicketID), zap.Error(err))
	}
	return nil
}
