package domain

// BookStore is the catalog as seen by the query and review services.
type BookStore interface {
	// Ready reports whether the catalog has been seeded.
	Ready() bool

	// All returns a copy of every book in catalog order.
	All() []Book

	// Get returns a copy of a single book, or ErrNotFound.
	Get(isbn string) (Book, error)

	// PutReview sets the review text for username on the book, replacing any previous one.
	PutReview(isbn string, username string, text string) error

	// DeleteReview removes username's review from the book.
	// It can return ErrNotFound or ErrReviewNotFound.
	DeleteReview(isbn string, username string) error
}

// CredentialVerifier checks a username/password pair.
type CredentialVerifier interface {
	VerifyCredentials(username string, password string) bool
}
