package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/upk-it/helpdesk/internal/domain"
)

// TicketScope narrows listing to what a role may see: admins everything,
// resolvers their queue plus the unassigned pool, requesters their own.
type TicketScope struct {
	RequesterID          *string
	AssignedOrUnassigned *string
}

// ScopeAll returns an unrestricted scope.
func ScopeAll() TicketScope { return TicketScope{} }

// ScopeRequester restricts to tickets owned by the given requester.
func ScopeRequester(userID string) TicketScope {
	return TicketScope{RequesterID: &userID}
}

// ScopeResolver restricts to tickets assigned to the resolver or unassigned.
func ScopeResolver(userID string) TicketScope {
	return TicketScope{AssignedOrUnassigned: &userID}
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, scope TicketScope) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, number, title, description, area, priority, type, status,
               requester_id, assignee_id, due_at, created_at, updated_at`

// Create assigns the next human-facing number from ticket_number_seq and
// inserts the row in one transaction, so concurrent creates never collide.
func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var seq int64
	if err := tx.QueryRow(ctx, `SELECT nextval('ticket_number_seq')`).Scan(&seq); err != nil {
		return err
	}
	ticket.Number = domain.FormatTicketNumber(seq)

	const query = `
        INSERT INTO tickets (number, title, description, area, priority, type, status, requester_id, assignee_id, due_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query,
		ticket.Number,
		ticket.Title,
		ticket.Description,
		ticket.Area,
		ticket.Priority,
		ticket.Type,
		ticket.Status,
		ticket.RequesterID,
		ticket.AssigneeID,
		ticket.DueAt,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, assignee_id=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	if err := r.pool.QueryRow(ctx, query,
		ticket.Status,
		ticket.AssigneeID,
		ticket.ID,
	).Scan(&ticket.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Number,
		&ticket.Title,
		&ticket.Description,
		&ticket.Area,
		&ticket.Priority,
		&ticket.Type,
		&ticket.Status,
		&ticket.RequesterID,
		&ticket.AssigneeID,
		&ticket.DueAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, scope TicketScope) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets`
	args := []any{}

	switch {
	case scope.RequesterID != nil:
		query += ` WHERE requester_id=$1`
		args = append(args, *scope.RequesterID)
	case scope.AssignedOrUnassigned != nil:
		query += ` WHERE (assignee_id=$1 OR assignee_id IS NULL)`
		args = append(args, *scope.AssignedOrUnassigned)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Number,
			&ticket.Title,
			&ticket.Description,
			&ticket.Area,
			&ticket.Priority,
			&ticket.Type,
			&ticket.Status,
			&ticket.RequesterID,
			&ticket.AssigneeID,
			&ticket.DueAt,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
