package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

// fakeClock is a settable time source
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestIssuer(t *testing.T, clock *fakeClock) *Issuer {
	t.Helper()
	issuer, err := NewIssuer(testSecret, time.Hour, WithClock(clock.Now))
	require.NoError(t, err)
	return issuer
}

func TestIssueAndVerify(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, clock)

	grant, err := issuer.Issue("alice")
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(time.Hour), grant.ExpiresAt)

	claims, err := issuer.Verify(grant.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, clock.now, claims.IssuedAt)
	assert.Equal(t, grant.ExpiresAt, claims.ExpiresAt)
}

func TestExpiryBoundary(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, clock)

	grant, err := issuer.Issue("alice")
	require.NoError(t, err)

	clock.now = grant.ExpiresAt.Add(-time.Second)
	_, err = issuer.Verify(grant.Token)
	assert.NoError(t, err)

	clock.now = grant.ExpiresAt.Add(time.Second)
	_, err = issuer.Verify(grant.Token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	issuer := newTestIssuer(t, clock)

	other, err := NewIssuer([]byte("another-secret"), time.Hour, WithClock(clock.Now))
	require.NoError(t, err)

	grant, err := other.Issue("alice")
	require.NoError(t, err)

	_, err = issuer.Verify(grant.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, errors.Is(err, ErrTokenExpired))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := newTestIssuer(t, &fakeClock{now: time.Now()})

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, tok)
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	issuer := newTestIssuer(t, &fakeClock{now: time.Now()})

	alice, err := issuer.Issue("alice")
	require.NoError(t, err)
	bob, err := issuer.Issue("bob")
	require.NoError(t, err)

	// bob's header and payload with alice's signature
	aliceParts := strings.Split(alice.Token, ".")
	bobParts := strings.Split(bob.Token, ".")
	forged := strings.Join([]string{bobParts[0], bobParts[1], aliceParts[2]}, ".")

	_, err = issuer.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	issuer := newTestIssuer(t, &fakeClock{now: time.Now()})

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	issuer := newTestIssuer(t, &fakeClock{now: time.Now()})

	claims := jwt.RegisteredClaims{Subject: "alice"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = issuer.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewIssuerDefaults(t *testing.T) {
	_, err := NewIssuer(nil, time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)

	issuer, err := NewIssuer(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, issuer.TTL())

	_, err = issuer.Issue("")
	assert.Error(t, err)
}
