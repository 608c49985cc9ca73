package bookclub

import (
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/trussworks/bookclub/pkg/domain"
	"github.com/trussworks/bookclub/pkg/logger"
	"github.com/trussworks/bookclub/pkg/token"
)

// NewUserSessions returns a configured UserSessions
func NewUserSessions(scs *scs.SessionManager, issuer *token.Issuer, users domain.CredentialVerifier, options ...Option) (UserSessions, error) {
	if scs == nil || issuer == nil || users == nil {
		return UserSessions{}, errors.New("a session manager, token issuer and user directory are all required")
	}

	sessions := UserSessions{
		scs,
		issuer,
		users,
		logger.NewSlogLogger(nil),
		newDefaultErrorHandler(),
	}

	for _, option := range options {
		err := option(&sessions)
		if err != nil {
			return UserSessions{}, err
		}
	}

	return sessions, nil
}

type Option func(*UserSessions) error

func CustomLogger(logger EventLogger) Option {
	return func(userSessions *UserSessions) error {
		if logger == nil {
			return errors.New("custom logger must not be nil")
		}
		userSessions.logger = logger
		return nil
	}
}

func CustomErrorHandler(errorHandler http.Handler) Option {
	return func(userSessions *UserSessions) error {
		if errorHandler == nil {
			return errors.New("custom error handler must not be nil")
		}
		userSessions.errorHandler = errorHandler
		return nil
	}
}
