package bookclub

// Everything exported in this file is intended to be used to make testing code that is protected by bookclub easier.

import (
	"context"
	"fmt"
)

// ContextWithTestUsername is not used in the operation of bookclub. It is intended to
// be used in your tests, to mimic what ProtectedMiddleware does for authorized requests.
func ContextWithTestUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameContextKey, username)
}

// LoginTestSession is not used in the operation of bookclub. It is intended to be used in
// your tests to give a context a fresh, logged in session without checking credentials,
// alleviating you from having to register and log in as part of the test.
func (s UserSessions) LoginTestSession(ctx context.Context, username string) (context.Context, error) {
	sessionCtx, err := s.scs.Load(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("loading a new session: %w", err)
	}

	grant, err := s.issuer.Issue(username)
	if err != nil {
		return nil, err
	}

	s.scs.Put(sessionCtx, usernameKey, username)
	s.scs.Put(sessionCtx, accessTokenKey, grant.Token)

	return sessionCtx, nil
}
