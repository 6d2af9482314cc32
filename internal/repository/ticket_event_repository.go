package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/upk-it/helpdesk/internal/domain"
)

// TicketEventRepository persists the append-only audit trail. Events are
// never updated or deleted.
type TicketEventRepository interface {
	Create(ctx context.Context, event *domain.TicketEvent) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketEvent, error)
}

type ticketEventRepository struct {
	pool *pgxpool.Pool
}

// NewTicketEventRepository constructs repository.
func NewTicketEventRepository(pool *pgxpool.Pool) TicketEventRepository {
	return &ticketEventRepository{pool: pool}
}

func (r *ticketEventRepository) Create(ctx context.Context, event *domain.TicketEvent) error {
	const query = `
        INSERT INTO ticket_events (ticket_id, action, description, by_name)
        VALUES ($1,$2,$3,$4)
        RETURNING id, at`
	return r.pool.QueryRow(ctx, query,
		event.TicketID,
		event.Action,
		event.Description,
		event.By,
	).Scan(&event.ID, &event.At)
}

func (r *ticketEventRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketEvent, error) {
	const query = `
        SELECT id, ticket_id, at, action, description, by_name
        FROM ticket_events WHERE ticket_id=$1 ORDER BY at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketEvent
	for rows.Next() {
		var event domain.TicketEvent
		if err := rows.Scan(
			&event.ID,
			&event.TicketID,
			&event.At,
			&event.Action,
			&event.Description,
			&event.By,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
