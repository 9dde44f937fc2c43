package storage

import (
	"context"

	"github.com/eventhub/server/internal/domain/events"
	"github.com/eventhub/server/internal/domain/tickets"
	"github.com/eventhub/server/internal/domain/users"
)

// Repository is the injected store-access object handed to the API layer.
// It replaces any process-wide shared connection handle so handlers can be
// exercised against test doubles.
type Repository interface {
	Users() users.Repository
	Events() events.Repository
	Tickets() tickets.Repository

	// WithTx runs fn inside one transaction. No current handler spans more
	// than a single statement, but any future multi-statement operation must
	// go through here.
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
}
