package bookclub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trussworks/bookclub/pkg/domain"
)

func TestLogSessionCreated(t *testing.T) {
	setup := newTestSetup(t)
	ctx := setup.newSessionContext(t)

	_, err := setup.userSessions.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	// Check that we logged session creation
	line, err := setup.logRecorder.GetOnlyMatchingMessage("New User Session Created")
	require.NoError(t, err)

	// Check that we logged a session id hash, not the session id
	hash, ok := line.Fields["session_id_hash"]
	require.True(t, ok, "Should have logged a session id hash")
	assert.Len(t, hash, 12)
	assert.NotEqual(t, setup.sessionManager.GetString(ctx, sessionIDKey), hash)
	assert.Equal(t, "alice", line.Fields["username"])
}

func TestLogSessionReauthenticated(t *testing.T) {
	setup := newTestSetup(t)
	ctx := setup.newSessionContext(t)

	_, err := setup.userSessions.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	_, err = setup.userSessions.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	assert.Len(t, setup.logRecorder.MatchingMessages(domain.SessionCreated), 1)
	assert.Len(t, setup.logRecorder.MatchingMessages(domain.SessionReauthenticated), 1)
}

func TestLogSessionDestroyed(t *testing.T) {
	setup := newTestSetup(t)
	ctx := setup.newSessionContext(t)

	_, err := setup.userSessions.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.NoError(t, setup.userSessions.Logout(ctx))

	line, err := setup.logRecorder.GetOnlyMatchingMessage("User Session Destroyed")
	require.NoError(t, err)

	_, ok := line.Fields["session_id_hash"]
	assert.True(t, ok, "Should have logged a session id hash")
	assert.Equal(t, "alice", line.Fields["username"])
}

func TestLogExpiredToken(t *testing.T) {
	setup := newTestSetup(t)
	ctx := setup.newSessionContext(t)

	grant, err := setup.userSessions.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	setup.clock.now = grant.ExpiresAt.Add(time.Minute)
	_, err = setup.userSessions.Authorize(ctx)
	require.Error(t, err)

	_, err = setup.logRecorder.GetOnlyMatchingMessage(domain.TokenExpired)
	assert.NoError(t, err)
	assert.Empty(t, setup.logRecorder.MatchingMessages(domain.TokenInvalid))
}

func TestLogInvalidToken(t *testing.T) {
	setup := newTestSetup(t)
	ctx := setup.newSessionContext(t)

	_, err := setup.userSessions.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	setup.sessionManager.Put(ctx, accessTokenKey, "forged.token.value")

	_, err = setup.userSessions.Authorize(ctx)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = setup.logRecorder.GetOnlyMatchingMessage(domain.TokenInvalid)
	assert.NoError(t, err)
}

func TestLogSessionDoesNotExist(t *testing.T) {
	setup := newTestSetup(t)
	ctx := setup.newSessionContext(t)

	_, err := setup.userSessions.Authorize(ctx)
	require.ErrorIs(t, err, ErrNotLoggedIn)

	line, err := setup.logRecorder.GetOnlyMatchingMessage(domain.SessionDoesNotExist)
	require.NoError(t, err)
	_, ok := line.Fields["session_id_hash"]
	assert.True(t, ok, "Should have logged a session id hash")

	// after logout the session is anonymous again
	_, err = setup.userSessions.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.NoError(t, setup.userSessions.Logout(ctx))
	_, err = setup.userSessions.Authorize(ctx)
	require.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Len(t, setup.logRecorder.MatchingMessages(domain.SessionDoesNotExist), 2)
}
