// Package users is the in-memory user directory backing registration and login.
package users

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/trussworks/bookclub/pkg/domain"
)

// Account is a registered user. Usernames are case sensitive.
type Account struct {
	Username     string
	PasswordHash []byte
}

// Directory stores accounts keyed by username. It is safe for concurrent use.
type Directory struct {
	mu       sync.RWMutex
	accounts map[string]Account
	cost     int
}

var _ domain.CredentialVerifier = (*Directory)(nil)

// Option configures a Directory
type Option func(*Directory)

// WithCost sets the bcrypt cost used when hashing new passwords.
func WithCost(cost int) Option {
	return func(d *Directory) {
		d.cost = cost
	}
}

// NewDirectory returns an empty Directory
func NewDirectory(options ...Option) *Directory {
	d := &Directory{
		accounts: map[string]Account{},
		cost:     bcrypt.DefaultCost,
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// Register adds a new account. It returns domain.ErrMissingField if either value is
// empty and domain.ErrAlreadyExists if the username is taken.
func (d *Directory) Register(username string, password string) error {
	if username == "" || password == "" {
		return domain.ErrMissingField
	}

	// Hash outside the lock, bcrypt is slow on purpose.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, taken := d.accounts[username]; taken {
		return domain.ErrAlreadyExists
	}
	d.accounts[username] = Account{
		Username:     username,
		PasswordHash: hash,
	}
	return nil
}

// Exists reports whether the username has been registered. It is a read-only query;
// Register repeats the check under the write lock.
func (d *Directory) Exists(username string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.accounts[username]
	return ok
}

// VerifyCredentials is true iff an account with this exact username exists and the
// password matches.
func (d *Directory) VerifyCredentials(username string, password string) bool {
	d.mu.RLock()
	account, ok := d.accounts[username]
	d.mu.RUnlock()

	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)) == nil
}

// Len is the number of registered accounts
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.accounts)
}
