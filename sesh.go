// Package bookclub is the session/token authority of the book club service.
// Login mints a signed, expiring access token and binds it to a server side session;
// ProtectedMiddleware verifies that token on every authenticated request and hands the
// bound username to the handlers behind it. All session lifecycle events are logged.
package bookclub

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/trussworks/bookclub/pkg/domain"
	"github.com/trussworks/bookclub/pkg/token"
)

// EventLogger is the interface that is used for logging all session lifecycle events. Supply your own with CustomLogger()
type EventLogger interface {
	LogSessionEvent(message string, metadata map[string]string)
}

// Errors for the error handler
var (
	ErrNotLoggedIn  = errors.New("this session is not logged in")
	ErrInvalidToken = errors.New("this session does not carry a valid access token")
)

// You should always make a custom type for context keys
type sessionContextKey string

const (
	// usernameContextKey is the key for storing the authorized username in the context
	usernameContextKey sessionContextKey = "username-context-key"

	// errorHandleKey is the context key for the error that the error handler can fetch
	errorHandleKey sessionContextKey = "error-handle-key"
)

// UserSessions binds access tokens to scs browser sessions.
type UserSessions struct {
	scs          *scs.SessionManager
	issuer       *token.Issuer
	users        domain.CredentialVerifier
	logger       EventLogger
	errorHandler http.Handler
}

// Login checks the credentials, mints an access token and stores it in the session in ctx,
// replacing whatever identity the session held. ctx must carry a session loaded by the scs
// SessionManager. On bad credentials it returns domain.ErrInvalidCredentials and the
// session is left untouched.
func (s UserSessions) Login(ctx context.Context, username string, password string) (token.Grant, error) {
	if !s.users.VerifyCredentials(username, password) {
		s.logger.LogSessionEvent(domain.LoginFailed, map[string]string{"username": username})
		return token.Grant{}, domain.ErrInvalidCredentials
	}

	grant, err := s.issuer.Issue(username)
	if err != nil {
		return token.Grant{}, err
	}

	previousUser := s.scs.GetString(ctx, usernameKey)

	// Renew the session token to prevent session fixation attacks on auth change
	err = s.scs.RenewToken(ctx)
	if err != nil {
		return token.Grant{}, fmt.Errorf("Failed to renew the token for login: %w", err)
	}

	s.scs.Put(ctx, usernameKey, username)
	s.scs.Put(ctx, accessTokenKey, grant.Token)

	// Commit now so the store holds the session and we learn its ID.
	sessionID, _, err := s.scs.Commit(ctx)
	if err != nil {
		return token.Grant{}, fmt.Errorf("Failed to write new user session to store: %w", err)
	}

	// SCS only exposes the session ID from Commit, so keep it in the session for logging.
	s.scs.Put(ctx, sessionIDKey, sessionID)

	message := domain.SessionCreated
	if previousUser != "" {
		message = domain.SessionReauthenticated
	}
	s.logger.LogSessionEvent(message, map[string]string{
		"session_id_hash": hashSessionKey(sessionID),
		"username":        username,
	})

	return grant, nil
}

// Authorize verifies the access token held by the session in ctx and returns the username
// it was issued to. It returns ErrNotLoggedIn when the session holds no token and an error
// wrapping ErrInvalidToken when the token is forged, expired, or bound to another user.
func (s UserSessions) Authorize(ctx context.Context) (string, error) {
	sessionHash := hashSessionKey(s.scs.GetString(ctx, sessionIDKey))

	accessToken := s.scs.GetString(ctx, accessTokenKey)
	if accessToken == "" {
		s.logger.LogSessionEvent(domain.SessionDoesNotExist, map[string]string{"session_id_hash": sessionHash})
		return "", ErrNotLoggedIn
	}

	claims, err := s.issuer.Verify(accessToken)
	if err != nil {
		message := domain.TokenInvalid
		if errors.Is(err, token.ErrTokenExpired) {
			message = domain.TokenExpired
		}
		s.logger.LogSessionEvent(message, map[string]string{"session_id_hash": sessionHash})
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Username != s.scs.GetString(ctx, usernameKey) {
		s.logger.LogSessionEvent(domain.TokenInvalid, map[string]string{"session_id_hash": sessionHash})
		return "", fmt.Errorf("%w: token subject does not match the session", ErrInvalidToken)
	}

	return claims.Username, nil
}

func reqWithValue(r *http.Request, key interface{}, value interface{}) *http.Request {
	newCtx := context.WithValue(r.Context(), key, value)
	return r.WithContext(newCtx)
}

// ProtectedMiddleware authorizes the session of every request before calling next.
// The authorized username is stored in the context, retrieve it with UsernameFromContext(ctx).
// If authorization fails it calls the error handler instead and next is never called.
func (s UserSessions) ProtectedMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := s.Authorize(r.Context())
		if err != nil {
			errReq := reqWithValue(r, errorHandleKey, err)
			s.errorHandler.ServeHTTP(w, errReq)
			return
		}

		next.ServeHTTP(w, reqWithValue(r, usernameContextKey, username))
	})
}

// UsernameFromContext returns the username that the protected middleware stored in the context.
// ok is false outside of a protected handler.
func UsernameFromContext(ctx context.Context) (username string, ok bool) {
	username, ok = ctx.Value(usernameContextKey).(string)
	return username, ok && username != ""
}

// ErrorFromContext returns the error that caused the error handler to be called by the protected middleware.
// It wraps either ErrNotLoggedIn or ErrInvalidToken.
// If this function is called outside of an error handler, it will likely panic because no error has been set.
func ErrorFromContext(ctx context.Context) error {
	return ctx.Value(errorHandleKey).(error)
}

// Logout clears the identity from the session in ctx.
func (s UserSessions) Logout(ctx context.Context) error {
	// Renew the session token to prevent session fixation attacks on auth change
	err := s.scs.RenewToken(ctx)
	if err != nil {
		return fmt.Errorf("Failed to renew the token: %w", err)
	}

	username := s.scs.PopString(ctx, usernameKey)
	s.scs.Remove(ctx, accessTokenKey)
	currentSessionID := s.scs.PopString(ctx, sessionIDKey)

	_, _, err = s.scs.Commit(ctx)
	if err != nil {
		return fmt.Errorf("Failed to write logged out session to store: %w", err)
	}

	s.logger.LogSessionEvent(domain.SessionDestroyed, map[string]string{
		"session_id_hash": hashSessionKey(currentSessionID),
		"username":        username,
	})

	return nil
}
