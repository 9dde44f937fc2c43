package events

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Event, error) {
	return s.repo.Create(ctx, params)
}

// List returns every event, unfiltered and unpaginated.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

// GetByID backs the single-event route and both of its order-summary
// aliases; the workflow stages share one lookup.
func (s *Service) GetByID(ctx context.Context, id int64) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}
