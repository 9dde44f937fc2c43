package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventhub/server/internal/domain/events"
	"github.com/jackc/pgx/v5"
)

var _ events.Repository = (*EventRepository)(nil)

func (r *EventRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *EventRepository) Create(ctx context.Context, params events.CreateParams) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO events (owner, title, description, organized_by, event_date, event_time,
                    location, ticket_price, likes, image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, owner, title, description, organized_by, event_date, event_time,
          location, ticket_price, likes, image, created_at
`,
		params.Owner,
		params.Title,
		params.Description,
		params.OrganizedBy,
		params.EventDate,
		params.EventTime,
		params.Location,
		params.TicketPrice,
		params.Likes,
		params.Image,
	)

	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) List(ctx context.Context) ([]events.Event, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT id, owner, title, description, organized_by, event_date, event_time,
       location, ticket_price, likes, image, created_at
  FROM events
 ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	items := make([]events.Event, 0)
	for rows.Next() {
		var event events.Event
		if err := rows.Scan(
			&event.ID,
			&event.Owner,
			&event.Title,
			&event.Description,
			&event.OrganizedBy,
			&event.EventDate,
			&event.EventTime,
			&event.Location,
			&event.TicketPrice,
			&event.Likes,
			&event.Image,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return items, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT id, owner, title, description, organized_by, event_date, event_time,
       location, ticket_price, likes, image, created_at
  FROM events
 WHERE id = $1
`, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func scanEvent(row pgx.Row) (*events.Event, error) {
	var event events.Event
	if err := row.Scan(
		&event.ID,
		&event.Owner,
		&event.Title,
		&event.Description,
		&event.OrganizedBy,
		&event.EventDate,
		&event.EventTime,
		&event.Location,
		&event.TicketPrice,
		&event.Likes,
		&event.Image,
		&event.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}
