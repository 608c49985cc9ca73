package domain

import (
	"errors"
)

// errors
var (
	// ErrMissingField is returned when a required value is absent or empty
	ErrMissingField = errors.New("required field is missing")

	// ErrAlreadyExists is returned when registering a username that is taken
	ErrAlreadyExists = errors.New("user already exists")

	// ErrNotFound is returned when a book cannot be resolved, or the catalog is unavailable
	ErrNotFound = errors.New("book not found")

	// ErrReviewNotFound is returned when the caller has no review on the book
	ErrReviewNotFound = errors.New("review not found")

	// ErrInvalidCredentials is returned when a username/password pair does not match
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// log messages
var (
	SessionCreated         = "New User Session Created"
	SessionReauthenticated = "User Session Reauthenticated"
	SessionDestroyed       = "User Session Destroyed"
	LoginFailed            = "Login failed because of invalid credentials"
	TokenExpired           = "Auth failed because of an expired access token"
	TokenInvalid           = "Auth failed because of an invalid access token"
	SessionDoesNotExist    = "Auth failed because the session is not logged in"
)

// LogFields are the key/value pairs attached to a session lifecycle event.
type LogFields map[string]string
