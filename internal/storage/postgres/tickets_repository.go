package postgres

import (
	"context"
	"fmt"

	"github.com/eventhub/server/internal/domain/tickets"
	"github.com/jackc/pgx/v5"
)

var _ tickets.Repository = (*TicketRepository)(nil)

func (r *TicketRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *TicketRepository) Create(ctx context.Context, params tickets.CreateParams) (*tickets.Ticket, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO tickets (user_id, event_id, name, email, event_name, event_date,
                     event_time, ticket_price, qr)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, user_id, event_id, name, email, event_name, event_date,
          event_time, ticket_price, qr, created_at
`,
		params.UserID,
		params.EventID,
		params.Name,
		params.Email,
		params.EventName,
		params.EventDate,
		params.EventTime,
		params.TicketPrice,
		params.QR,
	)

	ticket, err := scanTicket(row)
	if err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return ticket, nil
}

func (r *TicketRepository) List(ctx context.Context) ([]tickets.Ticket, error) {
	return r.list(ctx, `
SELECT id, user_id, event_id, name, email, event_name, event_date,
       event_time, ticket_price, qr, created_at
  FROM tickets
 ORDER BY id
`)
}

func (r *TicketRepository) ListByUser(ctx context.Context, userID int64) ([]tickets.Ticket, error) {
	return r.list(ctx, `
SELECT id, user_id, event_id, name, email, event_name, event_date,
       event_time, ticket_price, qr, created_at
  FROM tickets
 WHERE user_id = $1
 ORDER BY id
`, userID)
}

// Delete removes the row if it exists. The command tag is deliberately not
// inspected: deleting an absent id succeeds silently.
func (r *TicketRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.queryer().Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) list(ctx context.Context, sql string, args ...any) ([]tickets.Ticket, error) {
	rows, err := r.queryer().Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	items := make([]tickets.Ticket, 0)
	for rows.Next() {
		var ticket tickets.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.UserID,
			&ticket.EventID,
			&ticket.Name,
			&ticket.Email,
			&ticket.EventName,
			&ticket.EventDate,
			&ticket.EventTime,
			&ticket.TicketPrice,
			&ticket.QR,
			&ticket.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		items = append(items, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}
	return items, nil
}

func scanTicket(row pgx.Row) (*tickets.Ticket, error) {
	var ticket tickets.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.EventID,
		&ticket.Name,
		&ticket.Email,
		&ticket.EventName,
		&ticket.EventDate,
		&ticket.EventTime,
		&ticket.TicketPrice,
		&ticket.QR,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}
