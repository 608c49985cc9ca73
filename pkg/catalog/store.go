// Package catalog holds the in-memory book catalog.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/trussworks/bookclub/pkg/domain"
)

//go:embed books.json
var defaultSeed []byte

// Store is a BookStore backed by a map. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	order []string
	books map[string]*domain.Book
}

var _ domain.BookStore = (*Store)(nil)

// NewStore returns a store seeded with the given books, in order.
// Duplicate or empty ISBNs are rejected.
func NewStore(seed []domain.Book) (*Store, error) {
	s := &Store{
		books: make(map[string]*domain.Book, len(seed)),
	}
	for _, book := range seed {
		if book.ISBN == "" {
			return nil, fmt.Errorf("seed book %q has no isbn: %w", book.Title, domain.ErrMissingField)
		}
		if _, dup := s.books[book.ISBN]; dup {
			return nil, fmt.Errorf("seed contains isbn %s twice", book.ISBN)
		}
		b := book.Clone()
		s.books[b.ISBN] = &b
		s.order = append(s.order, b.ISBN)
	}
	return s, nil
}

// NewDefaultStore returns a store seeded with the built in catalog.
func NewDefaultStore() (*Store, error) {
	seed, err := decodeSeed(defaultSeed)
	if err != nil {
		return nil, err
	}
	return NewStore(seed)
}

// LoadStore reads a JSON seed file. An empty path loads the built in catalog.
func LoadStore(path string) (*Store, error) {
	if path == "" {
		return NewDefaultStore()
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	seed, err := decodeSeed(raw)
	if err != nil {
		return nil, err
	}
	return NewStore(seed)
}

func decodeSeed(raw []byte) ([]domain.Book, error) {
	var seed []domain.Book
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}
	return seed, nil
}

// Ready reports whether the store holds a catalog. A nil store is not ready.
func (s *Store) Ready() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.books != nil
}

func (s *Store) All() []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]Book, 0, len(s.order))
	for _, isbn := range s.order {
		books = append(books, s.books[isbn].Clone())
	}
	return books
}

func (s *Store) Get(isbn string) (Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[isbn]
	if !ok {
		return Book{}, domain.ErrNotFound
	}
	return book.Clone(), nil
}

func (s *Store) PutReview(isbn string, username string, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[isbn]
	if !ok {
		return domain.ErrNotFound
	}
	if book.Reviews == nil {
		book.Reviews = map[string]string{}
	}
	book.Reviews[username] = text
	return nil
}

func (s *Store) DeleteReview(isbn string, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[isbn]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := book.Reviews[username]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(book.Reviews, username)
	return nil
}

// Book is re-exported so callers of the store do not need the domain import.
type Book = domain.Book
