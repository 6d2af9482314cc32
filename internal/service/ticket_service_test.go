package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upk-it/helpdesk/internal/domain"
	"github.com/upk-it/helpdesk/internal/events"
	"github.com/upk-it/helpdesk/internal/repository"
	apperrors "github.com/upk-it/helpdesk/pkg/util"
)

type fakeTicketRepo struct {
	mu      sync.Mutex
	seq     int64
	tickets []*domain.Ticket
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	ticket.Number = domain.FormatTicketNumber(f.seq)
	ticket.ID = fmt.Sprintf("ticket-%d", f.seq)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	f.tickets = append(f.tickets, &stored)
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.tickets {
		if existing.ID == ticket.ID {
			existing.Status = ticket.Status
			existing.AssigneeID = ticket.AssigneeID
			existing.UpdatedAt = time.Now()
			ticket.UpdatedAt = existing.UpdatedAt
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.tickets {
		if existing.ID == id {
			copied := *existing
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTicketRepo) List(_ context.Context, scope repository.TicketScope) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Ticket
	for _, existing := range f.tickets {
		switch {
		case scope.RequesterID != nil:
			if existing.RequesterID == nil || *existing.RequesterID != *scope.RequesterID {
				continue
			}
		case scope.AssignedOrUnassigned != nil:
			if existing.AssigneeID != nil && *existing.AssigneeID != *scope.AssignedOrUnassigned {
				continue
			}
		}
		result = append(result, *existing)
	}
	return result, nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	seq    int
	events []domain.TicketEvent
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.TicketEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	event.ID = fmt.Sprintf("event-%d", f.seq)
	event.At = time.Now()
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeEventRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.TicketEvent
	for _, event := range f.events {
		if event.TicketID == ticketID {
			result = append(result, event)
		}
	}
	return result, nil
}

type fakeAttachmentRepo struct {
	mu          sync.Mutex
	seq         int
	attachments []domain.TicketAttachment
}

func (f *fakeAttachmentRepo) Create(_ context.Context, attachment *domain.TicketAttachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	attachment.ID = fmt.Sprintf("attachment-%d", f.seq)
	attachment.UploadedAt = time.Now()
	f.attachments = append(f.attachments, *attachment)
	return nil
}

func (f *fakeAttachmentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketAttachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.TicketAttachment
	for _, attachment := range f.attachments {
		if attachment.TicketID == ticketID {
			result = append(result, attachment)
		}
	}
	return result, nil
}

type fakeStore struct {
	saved []string
}

func (f *fakeStore) Save(originalName string, _ []byte) (string, error) {
	f.saved = append(f.saved, originalName)
	return "/uploads/stored_" + originalName, nil
}

type captureDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type ticketFixture struct {
	service     *TicketService
	tickets     *fakeTicketRepo
	events      *fakeEventRepo
	attachments *fakeAttachmentRepo
	users       *fakeUserRepo
	store       *fakeStore
	dispatcher  *captureDispatcher
}

func newTicketFixture() *ticketFixture {
	f := &ticketFixture{
		tickets:     &fakeTicketRepo{},
		events:      &fakeEventRepo{},
		attachments: &fakeAttachmentRepo{},
		users:       newFakeUserRepo(),
		store:       &fakeStore{},
		dispatcher:  &captureDispatcher{},
	}
	f.service = NewTicketService(TicketDependencies{
		TicketRepo:     f.tickets,
		EventRepo:      f.events,
		AttachmentRepo: f.attachments,
		UserRepo:       f.users,
		Store:          f.store,
		Dispatcher:     f.dispatcher,
	})
	return f
}

func requesterAccount(id, name string) *domain.User {
	return &domain.User{ID: id, Name: name, Email: name + "@titan.com", Role: domain.RoleRequester, IsActive: true}
}

func TestTicketServiceCreate(t *testing.T) {
	f := newTicketFixture()
	actor := requesterAccount("u1", "ana")
	f.users.add(actor)

	before := time.Now()
	detail, err := f.service.Create(context.Background(), actor, TicketCreateInput{
		Title:       "PC no enciende",
		Description: "El equipo de caja 2 no arranca.",
		Area:        "TI",
		Priority:    domain.TicketPriorityAlta,
		Type:        domain.TicketTypeIncidente,
	})
	require.NoError(t, err)

	assert.Equal(t, "TIT-00001", detail.Ticket.Number)
	assert.Equal(t, domain.TicketStatusAbierto, detail.Ticket.Status)
	require.NotNil(t, detail.Ticket.DueAt)
	wantDue := before.Add(8 * time.Hour)
	assert.WithinDuration(t, wantDue, *detail.Ticket.DueAt, time.Minute)

	require.Len(t, detail.Events, 1)
	assert.Equal(t, domain.EventActionCreated, detail.Events[0].Action)
	assert.Equal(t, "ana", detail.Events[0].By)

	require.Len(t, f.dispatcher.published, 1)
	assert.Equal(t, events.EventTicketCreated, f.dispatcher.published[0].Type)
	payload, ok := f.dispatcher.published[0].Payload.(events.TicketCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, "TIT-00001", payload.Number)
	assert.Equal(t, "ana@titan.com", payload.RequesterEmail)
}

func TestTicketServiceCreateSequentialNumbers(t *testing.T) {
	f := newTicketFixture()
	actor := requesterAccount("u1", "ana")
	f.users.add(actor)

	for i := 1; i <= 3; i++ {
		detail, err := f.service.Create(context.Background(), actor, TicketCreateInput{
			Title:       fmt.Sprintf("Ticket %d", i),
			Description: "detalle",
			Area:        "TI",
			Priority:    domain.TicketPriorityMedia,
			Type:        domain.TicketTypeSolicitud,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.FormatTicketNumber(int64(i)), detail.Ticket.Number)
	}
}

func TestTicketServiceCreateRejectsNonRequesters(t *testing.T) {
	f := newTicketFixture()

	for _, role := range []domain.Role{domain.RoleResolver, domain.RoleAdmin} {
		actor := &domain.User{ID: "u1", Name: "n1", Role: role}
		_, err := f.service.Create(context.Background(), actor, TicketCreateInput{
			Title:       "t",
			Description: "d",
			Area:        "TI",
			Priority:    domain.TicketPriorityBaja,
			Type:        domain.TicketTypeCambio,
		})
		require.Error(t, err)
		assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
	}
}

func TestTicketServiceCreateValidation(t *testing.T) {
	f := newTicketFixture()
	actor := requesterAccount("u1", "ana")

	valid := TicketCreateInput{
		Title:       "t",
		Description: "d",
		Area:        "TI",
		Priority:    domain.TicketPriorityBaja,
		Type:        domain.TicketTypeCambio,
	}

	tests := []struct {
		name   string
		mutate func(*TicketCreateInput)
	}{
		{"empty title", func(in *TicketCreateInput) { in.Title = "  " }},
		{"empty description", func(in *TicketCreateInput) { in.Description = "" }},
		{"empty area", func(in *TicketCreateInput) { in.Area = "" }},
		{"unknown priority", func(in *TicketCreateInput) { in.Priority = "Urgente" }},
		{"unknown type", func(in *TicketCreateInput) { in.Type = "Consulta" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)
			_, err := f.service.Create(context.Background(), actor, input)
			require.Error(t, err)
			assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
		})
	}
	assert.Empty(t, f.tickets.tickets)
}

func TestTicketServiceListScoping(t *testing.T) {
	f := newTicketFixture()
	resolverID := "resolver-1"
	otherResolverID := "resolver-2"
	requesterID := "requester-1"

	seed := []*domain.Ticket{
		{ID: "t1", RequesterID: &requesterID, AssigneeID: &resolverID},
		{ID: "t2", RequesterID: &requesterID},
		{ID: "t3", RequesterID: strPtr("requester-2"), AssigneeID: &otherResolverID},
	}
	f.tickets.tickets = seed

	ctx := context.Background()

	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}
	all, err := f.service.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	resolver := &domain.User{ID: resolverID, Role: domain.RoleResolver}
	queue, err := f.service.List(ctx, resolver)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.ElementsMatch(t, []string{"t1", "t2"}, []string{queue[0].ID, queue[1].ID})

	requester := &domain.User{ID: requesterID, Role: domain.RoleRequester}
	own, err := f.service.List(ctx, requester)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.ElementsMatch(t, []string{"t1", "t2"}, []string{own[0].ID, own[1].ID})
}

func TestTicketServiceUpdate(t *testing.T) {
	f := newTicketFixture()
	requester := requesterAccount("u1", "ana")
	f.users.add(requester)

	created, err := f.service.Create(context.Background(), requester, TicketCreateInput{
		Title:       "PC no enciende",
		Description: "d",
		Area:        "TI",
		Priority:    domain.TicketPriorityAlta,
		Type:        domain.TicketTypeIncidente,
	})
	require.NoError(t, err)

	resolver := &domain.User{ID: "r1", Name: "Soporte N1", Role: domain.RoleResolver}
	status := domain.TicketStatusEnProceso
	assignee := "r1"
	detail, err := f.service.Update(context.Background(), resolver, created.Ticket.ID, TicketUpdateInput{
		Status:      &status,
		AssigneeSet: true,
		AssigneeID:  &assignee,
		Comment:     "Revisando el equipo",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusEnProceso, detail.Ticket.Status)
	require.NotNil(t, detail.Ticket.AssigneeID)
	assert.Equal(t, "r1", *detail.Ticket.AssigneeID)

	require.Len(t, detail.Events, 2)
	last := detail.Events[1]
	assert.Equal(t, "Estado cambiado a En proceso · Ticket reasignado", last.Action)
	require.NotNil(t, last.Description)
	assert.Equal(t, "Revisando el equipo", *last.Description)
	assert.Equal(t, "Soporte N1", last.By)

	require.Len(t, f.dispatcher.published, 2)
	payload, ok := f.dispatcher.published[1].Payload.(events.TicketUpdatedPayload)
	require.True(t, ok)
	assert.Equal(t, "Revisando el equipo", payload.Message)
	assert.Equal(t, "ana@titan.com", payload.RequesterEmail)
}

func TestTicketServiceUpdateUnassign(t *testing.T) {
	f := newTicketFixture()
	requester := requesterAccount("u1", "ana")
	f.users.add(requester)

	created, err := f.service.Create(context.Background(), requester, TicketCreateInput{
		Title:       "t",
		Description: "d",
		Area:        "TI",
		Priority:    domain.TicketPriorityBaja,
		Type:        domain.TicketTypeCambio,
	})
	require.NoError(t, err)

	admin := &domain.User{ID: "a1", Name: "Admin TI 1", Role: domain.RoleAdmin}
	detail, err := f.service.Update(context.Background(), admin, created.Ticket.ID, TicketUpdateInput{
		AssigneeSet: true,
		AssigneeID:  nil,
	})
	require.NoError(t, err)

	assert.Nil(t, detail.Ticket.AssigneeID)
	last := detail.Events[len(detail.Events)-1]
	assert.Equal(t, domain.EventActionUnassigned, last.Action)
	assert.Nil(t, last.Description)

	payload, ok := f.dispatcher.published[len(f.dispatcher.published)-1].Payload.(events.TicketUpdatedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.EventActionUnassigned, payload.Message)
}

func TestTicketServiceUpdateCommentOnly(t *testing.T) {
	f := newTicketFixture()
	requester := requesterAccount("u1", "ana")
	f.users.add(requester)

	created, err := f.service.Create(context.Background(), requester, TicketCreateInput{
		Title:       "t",
		Description: "d",
		Area:        "TI",
		Priority:    domain.TicketPriorityMedia,
		Type:        domain.TicketTypeSolicitud,
	})
	require.NoError(t, err)

	detail, err := f.service.Update(context.Background(), requester, created.Ticket.ID, TicketUpdateInput{
		Comment: "¿Alguna novedad?",
	})
	require.NoError(t, err)

	last := detail.Events[len(detail.Events)-1]
	assert.Equal(t, domain.EventActionGeneric, last.Action)
	require.NotNil(t, last.Description)
	assert.Equal(t, "¿Alguna novedad?", *last.Description)
}

func TestTicketServiceUpdateNoChanges(t *testing.T) {
	f := newTicketFixture()
	requester := requesterAccount("u1", "ana")
	f.users.add(requester)

	created, err := f.service.Create(context.Background(), requester, TicketCreateInput{
		Title:       "t",
		Description: "d",
		Area:        "TI",
		Priority:    domain.TicketPriorityMedia,
		Type:        domain.TicketTypeSolicitud,
	})
	require.NoError(t, err)
	eventsBefore := len(f.events.events)

	_, err = f.service.Update(context.Background(), requester, created.Ticket.ID, TicketUpdateInput{
		Comment: "   ",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
	assert.Len(t, f.events.events, eventsBefore)
}

func TestTicketServiceUpdateInvalidStatus(t *testing.T) {
	f := newTicketFixture()
	bogus := domain.TicketStatus("Archivado")
	_, err := f.service.Update(context.Background(), &domain.User{ID: "u1"}, "missing", TicketUpdateInput{
		Status: &bogus,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestTicketServiceUpdateMissingTicket(t *testing.T) {
	f := newTicketFixture()
	_, err := f.service.Update(context.Background(), &domain.User{ID: "u1"}, "missing", TicketUpdateInput{
		Comment: "hola",
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAddAttachment(t *testing.T) {
	f := newTicketFixture()
	requester := requesterAccount("u1", "ana")
	f.users.add(requester)

	created, err := f.service.Create(context.Background(), requester, TicketCreateInput{
		Title:       "t",
		Description: "d",
		Area:        "TI",
		Priority:    domain.TicketPriorityMedia,
		Type:        domain.TicketTypeSolicitud,
	})
	require.NoError(t, err)

	attachment, err := f.service.AddAttachment(context.Background(), created.Ticket.ID, AttachmentUpload{
		FileName: "captura.png",
		Data:     []byte{1, 2, 3},
	})
	require.NoError(t, err)

	assert.Equal(t, "captura.png", attachment.FileName)
	assert.Equal(t, "application/octet-stream", attachment.FileType)
	assert.Equal(t, int64(3), attachment.FileSize)
	assert.Equal(t, "/uploads/stored_captura.png", attachment.URL)
}

func TestAddAttachmentEmptyFile(t *testing.T) {
	f := newTicketFixture()
	_, err := f.service.AddAttachment(context.Background(), "any", AttachmentUpload{FileName: "x.txt"})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAddAttachmentMissingTicket(t *testing.T) {
	f := newTicketFixture()
	_, err := f.service.AddAttachment(context.Background(), "missing", AttachmentUpload{
		FileName: "x.txt",
		Data:     []byte("hola"),
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func strPtr(s string) *string { return &s }
