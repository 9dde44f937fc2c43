package tickets

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("ticket not found")

// Ticket is a purchase record. The event fields are a value snapshot copied
// at creation time: they are never re-read from the events table, and later
// edits to the source event do not flow into existing tickets.
type Ticket struct {
	ID          int64
	UserID      int64
	EventID     int64
	Name        string
	Email       string
	EventName   string
	EventDate   string
	EventTime   string
	TicketPrice float64
	QR          string
	CreatedAt   time.Time
}

type CreateParams struct {
	UserID      int64
	EventID     int64
	Name        string
	Email       string
	EventName   string
	EventDate   string
	EventTime   string
	TicketPrice float64
	QR          string
}

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Ticket, error)
	List(ctx context.Context) ([]Ticket, error)
	ListByUser(ctx context.Context, userID int64) ([]Ticket, error)
	// Delete removes a ticket row. Deleting an id that does not exist is not
	// an error; see the service for the policy.
	Delete(ctx context.Context, id int64) error
}
