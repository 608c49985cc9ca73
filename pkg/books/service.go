// Package books is the public, read only view of the catalog.
package books

import (
	"context"
	"time"

	"github.com/trussworks/bookclub/pkg/domain"
)

type Book = domain.Book

// Service answers catalog queries. Every method is side effect free.
type Service interface {
	ListAll(ctx context.Context) ([]Book, error)
	GetByKey(ctx context.Context, isbn string) (Book, error)
	FindByAuthor(ctx context.Context, author string) ([]Book, error)
	FindByTitle(ctx context.Context, title string) ([]Book, error)
	GetReviews(ctx context.Context, isbn string) ([]domain.Review, error)
}

type service struct {
	store   domain.BookStore
	latency time.Duration
}

// Option configures the service
type Option func(*service)

// WithLatency delays every read by d, simulating a slow catalog backend.
func WithLatency(d time.Duration) Option {
	return func(s *service) { s.latency = d }
}

// New returns a Service over store. A nil or unseeded store makes every
// read fail with domain.ErrNotFound.
func New(store domain.BookStore, options ...Option) Service {
	s := &service{store: store}
	for _, option := range options {
		option(s)
	}
	return s
}

// ready waits out the simulated latency and checks that the catalog is usable.
func (s *service) ready(ctx context.Context) error {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.store == nil || !s.store.Ready() {
		return domain.ErrNotFound
	}
	return nil
}

func (s *service) ListAll(ctx context.Context) ([]Book, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.store.All(), nil
}

func (s *service) GetByKey(ctx context.Context, isbn string) (Book, error) {
	if err := s.ready(ctx); err != nil {
		return Book{}, err
	}
	return s.store.Get(isbn)
}

// FindByAuthor matches author exactly, in catalog order. No match is an empty slice, not an error.
func (s *service) FindByAuthor(ctx context.Context, author string) ([]Book, error) {
	return s.filter(ctx, func(b Book) bool { return b.Author == author })
}

// FindByTitle matches title exactly, in catalog order. No match is an empty slice, not an error.
func (s *service) FindByTitle(ctx context.Context, title string) ([]Book, error) {
	return s.filter(ctx, func(b Book) bool { return b.Title == title })
}

func (s *service) filter(ctx context.Context, match func(Book) bool) ([]Book, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	found := []Book{}
	for _, book := range s.store.All() {
		if match(book) {
			found = append(found, book)
		}
	}
	return found, nil
}

func (s *service) GetReviews(ctx context.Context, isbn string) ([]domain.Review, error) {
	book, err := s.GetByKey(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return book.ReviewList(), nil
}
