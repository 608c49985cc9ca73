package bookclub

import (
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// SessionCookieName is the name of the cookie that carries the session key
const SessionCookieName = "bookclub_session"

// Keys used in the scs session
const (
	// usernameKey is the user the session's token was issued to
	usernameKey = "username"
	// accessTokenKey is the signed token minted at login
	accessTokenKey = "access-token"
	// sessionIDKey is used to store the session ID in the session because SCS does not expose it
	sessionIDKey = "session-id"
)

// SessionConfig configures the scs manager built by NewSessionManager
type SessionConfig struct {
	Lifetime        time.Duration
	CookiePath      string
	CookieSecure    bool
	CleanupInterval time.Duration
}

// NewSessionManager returns an scs manager with an in-memory store and the book club cookie.
func NewSessionManager(cfg SessionConfig) *scs.SessionManager {
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = time.Minute
	}

	manager := scs.New()
	manager.Store = memstore.NewWithCleanupInterval(cleanup)
	if cfg.Lifetime > 0 {
		manager.Lifetime = cfg.Lifetime
	}

	// LESSONS:
	// The domain must be "" for localhost to work
	// Secure must be false for http to work
	manager.Cookie.Name = SessionCookieName
	manager.Cookie.HttpOnly = true
	manager.Cookie.SameSite = http.SameSiteLaxMode
	manager.Cookie.Secure = cfg.CookieSecure
	manager.Cookie.Path = "/"
	if cfg.CookiePath != "" {
		manager.Cookie.Path = cfg.CookiePath
	}

	return manager
}

func hashSessionKey(sessionKey string) string {
	hashed := sha512.Sum512([]byte(sessionKey))
	hexEncoded := hex.EncodeToString(hashed[:])
	return hexEncoded[:12]
}
