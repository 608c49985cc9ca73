// Package reviews mutates the caller's review on a book. The username passed to it must
// come from an authorized session, never from the request itself.
package reviews

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trussworks/bookclub/pkg/domain"
)

type Service interface {
	Upsert(ctx context.Context, isbn, username, text string) error
	Delete(ctx context.Context, isbn, username string) error
}

type service struct {
	store domain.BookStore
	log   *slog.Logger
}

// New returns a Service. A nil log uses slog.Default().
func New(store domain.BookStore, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{store: store, log: log}
}

// Upsert creates or replaces username's review of the book.
func (s *service) Upsert(ctx context.Context, isbn, username, text string) error {
	if isbn == "" || username == "" || text == "" {
		return domain.ErrMissingField
	}
	if s.store == nil || !s.store.Ready() {
		return domain.ErrNotFound
	}

	if err := s.store.PutReview(isbn, username, text); err != nil {
		return fmt.Errorf("saving review of %s: %w", isbn, err)
	}
	s.log.InfoContext(ctx, "review saved", "isbn", isbn, "username", username)
	return nil
}

// Delete removes username's review of the book.
func (s *service) Delete(ctx context.Context, isbn, username string) error {
	if isbn == "" || username == "" {
		return domain.ErrMissingField
	}
	if s.store == nil || !s.store.Ready() {
		return domain.ErrNotFound
	}

	if err := s.store.DeleteReview(isbn, username); err != nil {
		return fmt.Errorf("deleting review of %s: %w", isbn, err)
	}
	s.log.InfoContext(ctx, "review deleted", "isbn", isbn, "username", username)
	return nil
}
