package events

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("event not found")

// Event is a listed happening. Date and time are kept as the free-form text
// the client supplied so a create followed by a get round-trips verbatim.
type Event struct {
	ID          int64
	Owner       int64
	Title       string
	Description string
	OrganizedBy string
	EventDate   string
	EventTime   string
	Location    string
	TicketPrice float64
	Likes       int64
	Image       *string
	CreatedAt   time.Time
}

type CreateParams struct {
	Owner       int64
	Title       string
	Description string
	OrganizedBy string
	EventDate   string
	EventTime   string
	Location    string
	TicketPrice float64
	Likes       int64
	Image       *string
}

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
}
