package contact

import (
	"context"
	"errors"
	"log/slog"
)

var ErrContactNotFound = errors.New("contact not found")

// Notifier publishes contact events to interested consumers. It is
// optional: a nil Notifier disables publishing entirely.
type Notifier interface {
	Publish(ctx context.Context, event interface{}) error
}

type Service interface {
	Submit(ctx context.Context, contact *Contact) (*Contact, error)
	List(ctx context.Context, page, limit int) ([]Contact, int, error)
	Delete(ctx context.Context, id int64) error
	MarkRead(ctx context.Context, id int64) error
}

type service struct {
	repo     Repository
	notifier Notifier
	logger   *slog.Logger
}

func NewService(repo Repository, notifier Notifier, logger *slog.Logger) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *service) Submit(ctx context.Context, contact *Contact) (*Contact, error) {
	created, err := s.repo.Create(ctx, contact)
	if err != nil {
		return nil, err
	}

	// Publishing is best-effort: the message is already persisted and a
	// broker outage must not fail the visitor's request.
	if s.notifier != nil {
		event := SubmittedEvent{ID: created.ID, Name: created.Name, Email: created.Email}
		if err := s.notifier.Publish(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "failed to publish contact event", "error", err, "id", created.ID)
		}
	}

	return created, nil
}

func (s *service) List(ctx context.Context, page, limit int) ([]Contact, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	contacts, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrContactNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) MarkRead(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrContactNotFound
	}
	return s.repo.MarkRead(ctx, id)
}
