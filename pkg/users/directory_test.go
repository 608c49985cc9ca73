package users

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/trussworks/bookclub/pkg/domain"
)

func newTestDirectory() *Directory {
	return NewDirectory(WithCost(bcrypt.MinCost))
}

func TestRegisterThenDuplicate(t *testing.T) {
	pairs := []struct{ username, password, second string }{
		{"alice", "pw1", "pw2"},
		{"bob", "secret", "secret"},
		{"Some Pig", "x", ""},
	}

	for _, pair := range pairs {
		t.Run(pair.username, func(t *testing.T) {
			dir := newTestDirectory()
			require.NoError(t, dir.Register(pair.username, pair.password))
			assert.True(t, dir.Exists(pair.username))

			err := dir.Register(pair.username, pair.second)
			if pair.second == "" {
				assert.ErrorIs(t, err, domain.ErrMissingField)
			} else {
				assert.ErrorIs(t, err, domain.ErrAlreadyExists)
			}
			assert.Equal(t, 1, dir.Len())
		})
	}
}

func TestRegisterMissingFields(t *testing.T) {
	dir := newTestDirectory()

	assert.ErrorIs(t, dir.Register("", "pw"), domain.ErrMissingField)
	assert.ErrorIs(t, dir.Register("alice", ""), domain.ErrMissingField)
	assert.Equal(t, 0, dir.Len())
	assert.False(t, dir.Exists("alice"))
}

func TestUsernamesAreCaseSensitive(t *testing.T) {
	dir := newTestDirectory()

	require.NoError(t, dir.Register("alice", "pw"))
	require.NoError(t, dir.Register("Alice", "pw"))
	assert.False(t, dir.Exists("ALICE"))
	assert.False(t, dir.VerifyCredentials("ALICE", "pw"))
}

func TestVerifyCredentials(t *testing.T) {
	dir := newTestDirectory()
	require.NoError(t, dir.Register("alice", "pw1"))

	assert.True(t, dir.VerifyCredentials("alice", "pw1"))
	assert.False(t, dir.VerifyCredentials("alice", "wrong"))
	assert.False(t, dir.VerifyCredentials("alice", ""))
	assert.False(t, dir.VerifyCredentials("nobody", "pw1"))
}

func TestConcurrentRegisterKeepsOneAccount(t *testing.T) {
	dir := newTestDirectory()

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results <- dir.Register("alice", fmt.Sprintf("pw%d", i))
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, dir.Len())
}
