package tickets

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Ticket, error) {
	return s.repo.Create(ctx, params)
}

func (s *Service) List(ctx context.Context) ([]Ticket, error) {
	return s.repo.List(ctx)
}

// ListByUser returns the user's tickets; a user with none gets an empty
// slice, not an error.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Ticket, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete is idempotent by policy: deleting an id with no row succeeds
// silently, matching the observable behavior clients already rely on.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
